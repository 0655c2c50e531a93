package llm

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxDocumentBytes caps source-document downloads; anything larger than this
// would blow the provider's input window anyway.
const maxDocumentBytes = 20 << 20

// FetchDocument downloads a source document (typically a PDF in object
// storage) so it can be attached to a multimodal generation request. The MIME
// type comes from the Content-Type header, falling back to the URL extension.
func FetchDocument(ctx context.Context, documentURL string) (*DocumentPart, error) {
	if documentURL == "" {
		return nil, fmt.Errorf("document URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid document URL %s: %w", documentURL, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document from %s: %w", documentURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch document (status %d) from %s", resp.StatusCode, documentURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document from %s: %w", documentURL, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("document at %s exceeds %d bytes", documentURL, maxDocumentBytes)
	}

	mimeType := ""
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if parsed, _, parseErr := mime.ParseMediaType(ct); parseErr == nil {
			mimeType = parsed
		}
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(req.URL.Path)
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			mimeType, _, _ = strings.Cut(byExt, ";")
		}
	}
	if mimeType == "" {
		log.Warn().Str("url", documentURL).Msg("could not determine document MIME type, assuming PDF")
		mimeType = "application/pdf"
	}

	return &DocumentPart{Data: data, MIMEType: mimeType}, nil
}
