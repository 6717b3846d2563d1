package fixture

import (
	"encoding/base64"
	"fmt"
)

// WebhookPostEvent is a raw webhook payload carrying one unrecognized
// transaction whose account data is the GmPostAccount blob. Feeding it
// through event ingestion must index the post.
func WebhookPostEvent(postAddress string) []byte {
	data := base64.StdEncoding.EncodeToString(GmPostAccount())
	return []byte(fmt.Sprintf(`[{
		"signature": "5KtP3fixture111111111111111111111111111111111111111111111111111111111111111111111111111",
		"timestamp": 1700000100,
		"type": "UNKNOWN",
		"accountData": [
			{"account": %q, "data": %q, "nativeBalanceChange": 0}
		],
		"logMessages": ["Program log: Instruction: CreatePost"]
	}]`, postAddress, data))
}
