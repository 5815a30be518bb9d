package feedback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ctrlKshav/feedy-backend/internal/application"
	"github.com/ctrlKshav/feedy-backend/internal/domain/analysis"
	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
	"github.com/ctrlKshav/feedy-backend/internal/domain/prompt"
)

// Analyzer is the inference dispatcher as seen by the orchestrator.
type Analyzer interface {
	Analyze(ctx context.Context, item analysis.Item, prompt string) (string, error)
	Refine(ctx context.Context, initialPersona string) (string, error)
}

// File is satisfied by multipart.File and bytes.Reader.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

// Upload is one incoming file of an upload batch.
type Upload struct {
	Name string
	Size int64
	File File
}

// Service implements the three request-level use cases. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	Store     files.ObjectStore
	Extractor files.TextExtractor
	AI        Analyzer
	Clock     application.Clock

	KeyPrefix      string
	DefaultPersona string
	// Concurrency bounds the per-request fan-out of AnalyzeItems; <= 1 is sequential.
	Concurrency int
	Logger      *zap.Logger
}

//
// ==== USE CASES ====
//

// UploadFiles is all-or-nothing: every name is checked before the first
// storage call, and the first extraction or storage failure aborts the batch.
func (s *Service) UploadFiles(ctx context.Context, uploads []Upload) ([]files.UploadedFile, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files uploaded", analysis.ErrInvalidRequest)
	}
	types := make([]files.FileType, len(uploads))
	for i, u := range uploads {
		ft, err := files.Classify(u.Name)
		if err != nil {
			return nil, err
		}
		types[i] = ft
	}

	out := make([]files.UploadedFile, 0, len(uploads))
	for i, u := range uploads {
		uf := files.UploadedFile{
			SourceName: strings.ToLower(u.Name),
			FileType:   types[i],
		}

		if uf.FileType == files.FileTypePDF {
			text, err := s.Extractor.ExtractText(ctx, u.File, u.Size)
			if err != nil {
				return nil, err
			}
			uf.ExtractedText = text
			// rewind untuk upload ke storage
			if _, err := u.File.Seek(0, io.SeekStart); err != nil {
				return nil, fmt.Errorf("%w: rewind %s: %v", files.ErrExtraction, u.Name, err)
			}
		}

		key := s.objectKey(u.Name)
		url, err := s.Store.Upload(ctx, files.Object{
			Key:         key,
			Name:        u.Name,
			ContentType: files.ContentType(u.Name),
			Size:        u.Size,
			Body:        u.File,
		})
		if err != nil {
			return nil, err
		}
		if url == "" {
			return nil, fmt.Errorf("%w: empty url for %s", files.ErrStorage, u.Name)
		}
		uf.StoredURL = url

		s.logger().Info("file stored",
			zap.String("name", uf.SourceName),
			zap.String("type", string(uf.FileType)),
			zap.String("key", key),
			zap.Int("text_len", len(uf.ExtractedText)),
		)
		out = append(out, uf)
	}
	return out, nil
}

// AnalyzeItems is best effort per item: a failed item gets an error result in
// its own slot and never aborts the others. Results keep the input order.
func (s *Service) AnalyzeItems(ctx context.Context, req analysis.Request) ([]analysis.Result, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: image_urls must not be empty", analysis.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("%w: question is required", analysis.ErrInvalidRequest)
	}
	persona := s.persona(req.PersonaOverride)

	results := make([]analysis.Result, len(req.Items))
	var g errgroup.Group
	g.SetLimit(max(s.Concurrency, 1))
	for i, item := range req.Items {
		g.Go(func() error {
			results[i] = s.analyzeOne(ctx, item, persona, req.Question)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (s *Service) analyzeOne(ctx context.Context, item analysis.Item, persona, question string) analysis.Result {
	res := analysis.Result{
		ImageName: item.Name,
		ImageURL:  item.URL,
		FileType:  normalizedType(item.FileType),
	}

	text, err := s.dispatch(ctx, item, persona, question)
	if err != nil {
		s.logger().Warn("analysis failed",
			zap.String("name", item.Name),
			zap.String("url", item.URL),
			zap.Error(err),
		)
		res.Status = analysis.StatusError
		res.ResponseText = err.Error()
		return res
	}
	res.Status = analysis.StatusSuccess
	res.ResponseText = text
	return res
}

func (s *Service) dispatch(ctx context.Context, item analysis.Item, persona, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ft, err := files.ParseFileType(string(item.FileType))
	if err != nil {
		return "", err
	}
	item.FileType = ft

	var p string
	if ft == files.FileTypePDF {
		p = prompt.BuildDocumentPrompt(persona, question, item.Text)
	} else {
		p = prompt.BuildAnalysisPrompt(persona, question, ft)
	}
	return s.AI.Analyze(ctx, item, p)
}

// RefinePersona delegates to the dispatcher once.
func (s *Service) RefinePersona(ctx context.Context, initialPrompt string) (string, error) {
	if strings.TrimSpace(initialPrompt) == "" {
		return "", fmt.Errorf("%w: initial_prompt is required", analysis.ErrInvalidRequest)
	}
	refined, err := s.AI.Refine(ctx, initialPrompt)
	if err != nil {
		return "", err
	}
	return refined, nil
}

// helper

func (s *Service) persona(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if strings.TrimSpace(s.DefaultPersona) != "" {
		return s.DefaultPersona
	}
	return prompt.DefaultPersona
}

func (s *Service) objectKey(name string) string {
	prefix := strings.Trim(s.KeyPrefix, "/")
	if prefix == "" {
		prefix = "uploads"
	}
	var clock application.Clock = application.SystemClock{}
	if s.Clock != nil {
		clock = s.Clock
	}
	now := clock.Now()
	ext := strings.ToLower(filepath.Ext(name))
	return fmt.Sprintf("%s/%s/%s%s", prefix, now.UTC().Format("2006/01/02"), uuid.New().String(), ext)
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func normalizedType(ft files.FileType) files.FileType {
	if parsed, err := files.ParseFileType(string(ft)); err == nil {
		return parsed
	}
	return ft
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, files.ErrUnsupportedFormat) || errors.Is(err, analysis.ErrInvalidRequest)
}
