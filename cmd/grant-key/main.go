// Package main provides a one-shot utility for access grant key generation.
//
// It emits the asymmetric keypair used to sign and verify access grants.
package main

import (
	"os"

	"github.com/louisbranch/tempo/internal/platform/config"
	"github.com/louisbranch/tempo/internal/tools/grantkey"
)

func main() {
	if err := grantkey.Run(os.Stdout, nil); err != nil {
		config.Exitf("generate access grant key: %v", err)
	}
}
