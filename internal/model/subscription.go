package model

// SubscribeRequest representa a requisição para o endpoint de assinatura.
// Nenhum dos campos é obrigatório; ausentes seguem vazios para a Stripe.
type SubscribeRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// SubscribeResponse representa a resposta de sucesso do endpoint de assinatura
type SubscribeResponse struct {
	Success bool `json:"success"`
}
