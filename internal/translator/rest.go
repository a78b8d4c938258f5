package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subtrans/internal/awsauth"
	"subtrans/internal/chunker"
	"subtrans/internal/subtitle"
	"subtrans/pkg/log"
)

// translateTarget routes the JSON-RPC call to the TranslateText operation.
const translateTarget = "AWSShineFrontendService_20170701.TranslateText"

// DefaultMaxChunkBytes stays under the service's 10k-byte document limit
// with headroom for multi-byte text.
const DefaultMaxChunkBytes = 9500

// RESTConfig configures the signed HTTP translation backend.
type RESTConfig struct {
	Region        string
	SourceLang    string
	MaxChunkBytes int
	Mode          subtitle.ReconstructMode

	// Endpoint overrides the regional endpoint; tests point it at a local
	// server.
	Endpoint string
}

type restRequest struct {
	Text               string `json:"Text"`
	SourceLanguageCode string `json:"SourceLanguageCode"`
	TargetLanguageCode string `json:"TargetLanguageCode"`
}

type restResponse struct {
	TranslatedText string `json:"TranslatedText"`
}

// RESTBackend translates documents chunk by chunk through the signed
// translation API. Chunks of one document are sent sequentially so a single
// credential pair never sees interleaved calls for the same file; documents
// themselves run concurrently under the scheduler.
type RESTBackend struct {
	cfg        RESTConfig
	creds      awsauth.Credentials
	httpClient *http.Client
	now        func() time.Time
}

// NewRESTBackend builds the REST backend. Credentials must already be
// resolved; resolution failures are a startup concern, not a per-job one.
func NewRESTBackend(cfg RESTConfig, creds awsauth.Credentials) *RESTBackend {
	if cfg.MaxChunkBytes <= 0 {
		cfg.MaxChunkBytes = DefaultMaxChunkBytes
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = fmt.Sprintf("https://translate.%s.amazonaws.com", cfg.Region)
	}
	return &RESTBackend{
		cfg:        cfg,
		creds:      creds,
		httpClient: &http.Client{},
		now:        time.Now,
	}
}

func (b *RESTBackend) Name() string {
	return "rest"
}

// TranslateDocument extracts the flattened text lines, packs them into
// budget-sized chunks, translates each chunk in order and reconstructs the
// document around the translated lines.
func (b *RESTBackend) TranslateDocument(ctx context.Context, doc *subtitle.Document, targetLang string) (string, error) {
	lines := doc.ExtractText()
	if len(lines) == 0 {
		return doc.Reconstruct(nil, b.cfg.Mode)
	}

	var chunks []chunker.Chunk
	if chunker.JoinedSize(lines) <= b.cfg.MaxChunkBytes {
		chunks = []chunker.Chunk{lines}
	} else {
		chunks = chunker.Split(lines, b.cfg.MaxChunkBytes)
	}

	translated := make([]string, 0, len(lines))
	for i, chunk := range chunks {
		log.Debug("Translating chunk %d/%d (%d lines) to %s", i+1, len(chunks), len(chunk), targetLang)

		out, err := b.translateText(ctx, strings.Join(chunk, "\n"), targetLang)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		translated = append(translated, strings.Split(out, "\n")...)
	}

	return doc.Reconstruct(translated, b.cfg.Mode)
}

// translateText performs one signed POST. Every call signs afresh: the
// timestamp is baked into the signature, so signatures are never cached.
func (b *RESTBackend) translateText(ctx context.Context, text, targetLang string) (string, error) {
	payload, err := json.Marshal(restRequest{
		Text:               text,
		SourceLanguageCode: b.cfg.SourceLang,
		TargetLanguageCode: targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint, err := url.Parse(b.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", b.cfg.Endpoint, err)
	}

	signed := awsauth.Sign(http.MethodPost, "translate", b.cfg.Region,
		endpoint.Host, "/", payload, b.creds, b.now())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.cfg.Endpoint+"/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range signed.Headers {
		req.Header.Set(key, value)
	}
	// Operation routing header; deliberately outside the signed set.
	req.Header.Set("X-Amz-Target", translateTarget)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrBackendUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrBackendUnavailable,
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed restResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyResponse, err)
	}
	if parsed.TranslatedText == "" {
		return "", fmt.Errorf("%w: missing TranslatedText field", ErrEmptyResponse)
	}

	return parsed.TranslatedText, nil
}
