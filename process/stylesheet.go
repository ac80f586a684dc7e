package process

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"cssprite/sprite"
	"cssprite/state"
)

// unit holds what is shared by all stylesheets of a single run.
type unit struct {
	root       string // source directory
	dst        string
	spritesDir string
	opts       Options
	t          *sprite.Transformer
	log        *zap.Logger
}

// publicPath returns URL prefix of sprites directory relative to directory
// of output stylesheet, empty when configured output path should be used.
func (u *unit) publicPath(ctx context.Context, outName string) (string, error) {
	if state.EnvFromContext(ctx).Cfg.Sprites.OutputPath != "" {
		return "", nil
	}
	rel, err := filepath.Rel(filepath.Dir(outName), u.spritesDir)
	if err != nil {
		return "", fmt.Errorf("unable to locate sprites directory: %w", err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel) + "/", nil
}

// checkDestination makes sure output can be written.
func (u *unit) checkDestination(inName, outName string) error {
	if _, err := os.Stat(outName); err == nil {
		if !u.opts.Overwrite {
			return fmt.Errorf("output file already exists: %s", outName)
		}
		if inName == outName {
			u.log.Warn("Replacing source stylesheet", zap.String("file", outName))
		} else {
			u.log.Warn("Overwriting existing file", zap.String("file", outName))
		}
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

// process transforms single stylesheet. "rel" is slash separated path
// relative to source directory, the same relative path is used for output.
func (u *unit) process(ctx context.Context, rel string) (rerr error) {
	env := state.EnvFromContext(ctx)
	log := u.log.With(zap.String("file", rel))

	inName := filepath.Join(u.root, filepath.FromSlash(rel))
	outName := filepath.Join(u.dst, filepath.FromSlash(rel))

	var out *sprite.Output

	log.Debug("Stylesheet processing starting")
	defer func(start time.Time) {
		// single bad stylesheet must not stop the run
		if r := recover(); r != nil {
			log.Error("Stylesheet processing ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("processing panic: %v", r)
		} else if out != nil {
			log.Info("Stylesheet processed",
				zap.Duration("elapsed", time.Since(start)),
				zap.Int("candidates", out.Stats.Candidates),
				zap.Int("packed", out.Stats.Eligible),
				zap.Int("images", out.Stats.Images))
		}
	}(time.Now())

	if err := u.checkDestination(inName, outName); err != nil {
		return err
	}

	data, err := os.ReadFile(inName)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	if data, err = decodeStylesheet(data, u.opts.CodePage, log); err != nil {
		return err
	}

	publicPath, err := u.publicPath(ctx, outName)
	if err != nil {
		return err
	}

	out, err = u.t.Transform(ctx, sprite.Input{
		Source:     data,
		Meta:       map[string]any{"session": env.Session},
		Context:    filepath.Dir(inName),
		Name:       rel,
		PublicPath: publicPath,
	})
	if err != nil {
		return fmt.Errorf("unable to transform stylesheet: %w", err)
	}

	if err := (sprite.OSFileSystem{}).WriteFile(outName, out.Source, 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	if env.Rpt != nil {
		if out.Tree != nil {
			env.Rpt.StoreData(path.Join("tree", rel+".txt"), []byte(out.Tree.Dump()))
		}
		env.Rpt.Store(path.Join("result", rel), outName)
	}
	return nil
}
