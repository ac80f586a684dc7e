// Package process is the command line host for the sprite transform: it finds
// stylesheets, runs them through shared transformer and writes results.
package process

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"cssprite/packer"
	"cssprite/sprite"
	"cssprite/state"
)

// Options are per run settings coming from command line.
type Options struct {
	Overwrite bool
	Jobs      int               // 0 - use configuration
	CodePage  encoding.Encoding // for stylesheets without @charset, nil - UTF-8
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("process")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	opts := Options{Overwrite: cmd.Bool("overwrite"), Jobs: int(cmd.Int("jobs"))}

	if cp := cmd.String("charset"); len(cp) > 0 {
		if opts.CodePage, err = ianaindex.IANA.Encoding(cp); err != nil || opts.CodePage == nil {
			log.Warn("Unknown character set name. Ignoring...", zap.String("charset", cp), zap.Error(err))
			opts.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(opts.CodePage)
			log.Debug("Decoding stylesheets without @charset", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("session", env.Session))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, opts, log)
}

// process handles the core logic independently of CLI framework. Source is
// either single stylesheet or directory searched recursively.
func process(ctx context.Context, src, dst string, opts Options, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	root, files, err := collect(ctx, src, dst, log)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Info("Nothing to process", zap.String("source", src))
		return nil
	}

	spritesDir := filepath.Join(dst, env.Cfg.Sprites.OutputDir)
	t, err := sprite.New(env.Cfg.Sprites.Transform(), nil, packer.New(log), sprite.NewDirSink(spritesDir, nil), log)
	if err != nil {
		return fmt.Errorf("unable to prepare sprite transform: %w", err)
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = env.Cfg.Processing.Workers()
	}
	workers = min(workers, len(files))

	u := &unit{
		root:       root,
		dst:        dst,
		spritesDir: spritesDir,
		opts:       opts,
		t:          t,
		log:        log,
	}

	var (
		mu     sync.Mutex
		errs   error
		failed int
		wg     sync.WaitGroup
	)
	queue := make(chan string)
	for range workers {
		wg.Go(func() {
			for rel := range queue {
				if err := u.process(ctx, rel); err != nil {
					log.Error("Unable to process stylesheet", zap.String("file", rel), zap.Error(err))
					mu.Lock()
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
					failed++
					mu.Unlock()
				}
			}
		})
	}
	for _, rel := range files {
		if ctx.Err() != nil {
			break
		}
		queue <- rel
	}
	close(queue)
	wg.Wait()

	if t.Emitter().Written() > 0 {
		env.Rpt.Store("sprites", spritesDir)
	}
	log.Info("Stylesheets processed",
		zap.Int("total", len(files)),
		zap.Int("failed", failed),
		zap.Int("sprites", t.Emitter().Written()),
		zap.Int("workers", workers))

	if err := ctx.Err(); err != nil {
		return multierr.Append(errs, err)
	}
	if errs != nil {
		return fmt.Errorf("%d of %d stylesheets failed: %w", failed, len(files), errs)
	}
	return nil
}

func isStylesheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}

// collect returns root directory and slash separated paths of stylesheets
// relative to it in natural order. Files under dst are skipped when dst is
// inside source directory.
func collect(ctx context.Context, src, dst string, log *zap.Logger) (string, []string, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return "", nil, fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.Mode().IsRegular() {
		if !isStylesheet(src) {
			return "", nil, fmt.Errorf("input was not recognized as stylesheet (%s)", src)
		}
		return filepath.Dir(src), []string{filepath.Base(src)}, nil
	}
	if !fi.IsDir() {
		return "", nil, fmt.Errorf("unexpected path mode for (%s)", src)
	}

	skipDst := dst != src && strings.HasPrefix(dst, src+string(filepath.Separator))

	var files []string
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if skipDst && path == dst {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !isStylesheet(path) {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	sort.Sort(natural.StringSlice(files))
	return src, files, nil
}
