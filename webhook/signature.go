package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"drop/entities"
)

// signatureTolerance bounds the age of a signed notification so captured
// payloads cannot be replayed later.
const signatureTolerance = 5 * time.Minute

// verifySignature checks the processor's signature header, shaped
// "t=<unix>,v1=<hex>", against HMAC-SHA256(secret, "<t>.<body>"). Multiple
// v1 entries may appear during secret rotation; any valid one passes.
func verifySignature(body []byte, header, secret string, now time.Time) error {
	if header == "" || secret == "" {
		return entities.SignatureError{Reason: "missing signature or webhook secret"}
	}

	var timestamp int64 = -1
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return entities.SignatureError{Reason: "malformed signature header"}
			}
			timestamp = ts
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}
	if timestamp < 0 || len(candidates) == 0 {
		return entities.SignatureError{Reason: "malformed signature header"}
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age < 0 {
		age = -age
	}
	if age > signatureTolerance {
		return entities.SignatureError{Reason: "signature timestamp outside tolerance"}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, body)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(candidate), []byte(expected)) {
			return nil
		}
	}
	return entities.SignatureError{Reason: "invalid signature"}
}
