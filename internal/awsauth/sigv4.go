// Package awsauth implements Signature Version 4 request signing from hash
// and HMAC primitives, plus shared-credentials resolution. The signature
// must match the service's verifier bit for bit, so the canonical forms
// below are built by hand rather than through an SDK.
package awsauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const (
	algorithm   = "AWS4-HMAC-SHA256"
	contentType = "application/x-amz-json-1.1"

	amzDateFormat   = "20060102T150405Z"
	dateStampFormat = "20060102"
)

// SignedRequest carries the signature and the exact header set that must
// accompany the one HTTP call it authorizes. The signature embeds the
// timestamp, so a SignedRequest is never reused; every call signs afresh.
type SignedRequest struct {
	Timestamp string // X-Amz-Date value in basic ISO-8601
	Scope     string // date/region/service/aws4_request
	Signature string
	Headers   map[string]string
}

// Sign computes a Signature Version 4 signature for a JSON POST with no
// query string. It is a pure function of its inputs, timestamp included:
// identical inputs always produce an identical signature.
func Sign(method, service, region, host, path string, payload []byte, creds Credentials, now time.Time) SignedRequest {
	amzDate := now.UTC().Format(amzDateFormat)
	dateStamp := now.UTC().Format(dateStampFormat)

	// Step 1: canonical request. Header names sorted, lowercased, one per
	// line, with the security token included only when present.
	canonicalHeaders := "content-type:" + contentType + "\n" +
		"host:" + host + "\n" +
		"x-amz-date:" + amzDate + "\n"
	signedHeaders := "content-type;host;x-amz-date"
	if creds.SessionToken != "" {
		canonicalHeaders += "x-amz-security-token:" + creds.SessionToken + "\n"
		signedHeaders += ";x-amz-security-token"
	}

	canonicalRequest := strings.Join([]string{
		method,
		path,
		"", // no query string
		canonicalHeaders,
		signedHeaders,
		hexSHA256(payload),
	}, "\n")

	// Step 2: string to sign, binding the request to a credential scope.
	scope := dateStamp + "/" + region + "/" + service + "/aws4_request"
	stringToSign := strings.Join([]string{
		algorithm,
		amzDate,
		scope,
		hexSHA256([]byte(canonicalRequest)),
	}, "\n")

	// Steps 3 and 4: chained key derivation, then the final signature.
	kDate := hmacSHA256([]byte("AWS4"+creds.SecretAccessKey), dateStamp)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)
	kSigning := hmacSHA256(kService, "aws4_request")
	signature := hex.EncodeToString(hmacSHA256(kSigning, stringToSign))

	headers := map[string]string{
		"Content-Type": contentType,
		"X-Amz-Date":   amzDate,
		"Authorization": algorithm +
			" Credential=" + creds.AccessKeyID + "/" + scope +
			", SignedHeaders=" + signedHeaders +
			", Signature=" + signature,
	}
	if creds.SessionToken != "" {
		headers["X-Amz-Security-Token"] = creds.SessionToken
	}

	return SignedRequest{
		Timestamp: amzDate,
		Scope:     scope,
		Signature: signature,
		Headers:   headers,
	}
}

func hexSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, message string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return mac.Sum(nil)
}
