package paymentrequest

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

type codeInput struct {
	TelegramID string `json:"telegramId"`
	SaleName   string `json:"saleName"`
	SeqNo      int    `json:"seqNo"`
}

// Code derives the deterministic payment code for a request. The identifying
// triple is serialized in a fixed field order, hashed with SHA-256, and the
// digest is base64 encoded. Buyers include the code in the transfer comment
// so the payment can be matched back to its request.
func Code(telegramID, saleName string, seqNo int) string {
	payload, _ := json.Marshal(codeInput{
		TelegramID: telegramID,
		SaleName:   saleName,
		SeqNo:      seqNo,
	})
	digest := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(digest[:])
}
