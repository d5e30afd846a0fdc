package model

// ErrorResponse é o único formato de erro devolvido pelos endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}

// MsgNoMessage é o texto fixo devolvido quando o chat chega sem mensagem
const MsgNoMessage = "No message provided"

// MsgInvalidJSON é o texto devolvido quando o corpo não é um JSON válido
const MsgInvalidJSON = "Invalid JSON format"
