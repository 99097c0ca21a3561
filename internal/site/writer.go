package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/content"
	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
	"git.home.luguber.info/inful/pagetree/internal/logfields"
	"git.home.luguber.info/inful/pagetree/internal/metrics"
	"git.home.luguber.info/inful/pagetree/internal/plugin"
)

// ErrEscapesOutput is returned for save paths that resolve outside the
// output directory.
var ErrEscapesOutput = errors.New("save path escapes the output directory")

type writer struct {
	outputDir string
	hooks     *plugin.Hooks
	renderer  *Renderer
	recorder  metrics.Recorder
	logger    *slog.Logger
}

func (w *writer) write(ctx context.Context, p *content.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.hooks.PageWrite(p); err != nil {
		return err
	}

	target, err := outputPath(w.outputDir, p.EffectiveSaveAs())
	if err != nil {
		return derrors.WriteError(p.EffectiveSaveAs(), err)
	}
	html, err := w.renderer.Render(p)
	if err != nil {
		return derrors.ContentError(p.SourcePath, err)
	}
	if err := writeFile(target, html); err != nil {
		return derrors.WriteError(target, err)
	}

	w.recorder.IncPagesWritten()
	w.logger.Debug("Page written",
		logfields.File(p.SourcePath),
		logfields.URL(p.EffectiveURL()),
		logfields.Path(target))
	return nil
}

func outputPath(outputDir, saveAs string) (string, error) {
	if saveAs == "" {
		return "", fmt.Errorf("empty save path")
	}
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(saveAs, "/")))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEscapesOutput, saveAs)
	}
	return filepath.Join(outputDir, clean), nil
}

func writeFile(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o600)
}

// copyStatic mirrors every existing static path from the content directory
// into the output directory. Missing paths are skipped; most of the per-page
// image directories registered during content-object-init never exist.
func copyStatic(settings *config.Settings, logger *slog.Logger) error {
	copied := 0
	for _, sp := range settings.StaticPaths {
		src := filepath.Join(settings.ContentDir, filepath.FromSlash(sp))
		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return derrors.WriteError(src, err)
		}
		dst := filepath.Join(settings.OutputDir, filepath.FromSlash(sp))
		if !info.IsDir() {
			if err := copyFile(src, dst); err != nil {
				return derrors.WriteError(dst, err)
			}
			copied++
			continue
		}
		err = filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(src, p)
			if err != nil {
				return err
			}
			copied++
			return copyFile(p, filepath.Join(dst, rel))
		})
		if err != nil {
			return derrors.WriteError(dst, err)
		}
	}
	if copied > 0 {
		logger.Info("Static files copied", logfields.Count(copied))
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
