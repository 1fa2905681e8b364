package server

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// extractTextFromMessage pulls the text content out of an email message.
// Multipart messages contribute their text/plain parts; anything that
// cannot be parsed falls back to the raw body, since the triage pipeline
// strips markup and unusual characters anyway.
func extractTextFromMessage(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")

	if !strings.Contains(strings.ToLower(contentType), "multipart/") {
		return readBody(msg)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return readBody(msg)
	}

	boundary, ok := params["boundary"]
	if !ok {
		return readBody(msg)
	}

	mr := multipart.NewReader(msg.Body, boundary)

	var textContent bytes.Buffer
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if textContent.Len() > 0 {
				return textContent.String(), nil
			}
			return readBody(msg)
		}

		partContentType := strings.ToLower(part.Header.Get("Content-Type"))
		if strings.Contains(partContentType, "text/plain") {
			partBytes, err := io.ReadAll(part)
			if err != nil {
				continue
			}
			textContent.Write(partBytes)
			textContent.WriteString("\n")
		}
		// Nested multiparts and attachments are skipped
	}

	return textContent.String(), nil
}

func readBody(msg *mail.Message) (string, error) {
	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return "", err
	}
	return string(bodyBytes), nil
}
