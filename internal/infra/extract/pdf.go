package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/phuslu/log"
)

// PDFExtractor pulls text content out of PDF documents using pdfcpu.
type PDFExtractor struct {
	tempDir string
	logger  log.Logger
}

func NewPDFExtractor(logger log.Logger) *PDFExtractor {
	tempDir := filepath.Join(os.TempDir(), "legaleagleeye-pdf")
	os.MkdirAll(tempDir, 0755)
	return &PDFExtractor{tempDir: tempDir, logger: logger}
}

// ExtractText extracts the text of every page, in page order.
func (e *PDFExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	// Unique names so concurrent uploads never share a scratch path.
	id := uuid.New().String()
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("upload_%s.pdf", id))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(e.tempDir, "pages_"+id)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	pageTexts := make(map[int]string)
	files, _ := os.ReadDir(outDir)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(file.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		} else if _, err := fmt.Sscanf(file.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		}
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		if text := pageTexts[pageNum]; text != "" {
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		e.logger.Warn().Int("pages", pageCount).Msg("no text content extracted from PDF")
	}
	return text, nil
}
