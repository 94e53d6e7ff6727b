package report

// render.go: worker pool para dibujar los charts en paralelo.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/alejandrodnm/pnlstats/internal/ports"
)

// renderConcurrent dibuja todos los charts usando un worker pool. Un chart que
// falla no detiene al resto; los errores se devuelven juntos.
//
// Si workers <= 0 usa runtime.NumCPU().
func renderConcurrent(
	ctx context.Context,
	renderer ports.Renderer,
	charts []domain.Chart,
	workers int,
	log *slog.Logger,
) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(charts) {
		workers = len(charts)
	}

	workCh := make(chan domain.Chart, len(charts))
	errCh := make(chan error, len(charts))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range workCh {
				if err := renderer.Render(ctx, c); err != nil {
					log.Debug("render failed", "file", c.File, "err", err)
					errCh <- fmt.Errorf("%s: %w", c.File, err)
					continue
				}
				log.Debug("chart written", "file", c.File)
			}
		}()
	}

	for _, c := range charts {
		workCh <- c
	}
	close(workCh)

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
