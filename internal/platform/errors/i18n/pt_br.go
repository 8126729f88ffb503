package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		// Timer errors
		CodeTimerNameEmpty: "O nome do timer não pode ficar vazio",

		// Step errors
		CodeStepTitleEmpty:         "O título da etapa não pode ficar vazio",
		CodeStepInvalidDuration:    "A duração da etapa deve ser de pelo menos 1 segundo",
		CodeStepInvalidRepetitions: "As repetições da etapa devem ser de pelo menos 1",
		CodeStepInvalidOrderIndex:  "O índice de ordem da etapa deve ser zero ou maior",
		CodeStepOrderConflict:      "O índice de ordem {{.OrderIndex}} já é usado neste timer",
		CodeStepNotFound:           "A etapa solicitada não foi encontrada",

		// Import errors
		CodeImportRowMalformed: "A linha {{.Position}} não pôde ser lida: {{.Reason}}",
		CodeImportGroupInvalid: "O timer {{.TimerName}} não pôde ser importado: {{.Reason}}",

		// Request errors
		CodeRequestInvalid: "O corpo da requisição não pôde ser lido",

		// Listing errors
		CodeFilterInvalid:    "A expressão de filtro da lista é inválida",
		CodePageTokenInvalid: "O token de página é inválido ou expirou",

		// Auth errors
		CodeGrantInvalid: "A credencial de acesso está ausente ou é inválida",

		// Storage errors
		CodeNotFound: "O recurso solicitado não foi encontrado",
	},
}
