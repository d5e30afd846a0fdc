package model

// ChatRequest representa a requisição para o endpoint de chat.
// Message é ponteiro para distinguir campo ausente/null de string vazia;
// os três casos são rejeitados da mesma forma.
type ChatRequest struct {
	Message *string `json:"message"`
}

// Text devolve a mensagem ou "" quando ausente
func (r ChatRequest) Text() string {
	if r.Message == nil {
		return ""
	}
	return *r.Message
}

// ChatResponse representa a resposta de sucesso do endpoint de chat
type ChatResponse struct {
	Response string `json:"response"`
}
