package carver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/esimov/carver/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

var (
	// inputExtensions are the image files picked up when walking a directory.
	inputExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}
	// outputExtensions are the image formats which can be encoded.
	outputExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}
)

// Ops holds the source and destination of a resize operation.
// Src can be an image file, a directory, an URL or the pipe name (stdin),
// Dst an image file, a directory or the pipe name (stdout).
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the resizing process and the generated image.
type result struct {
	path string
	err  error
}

// job is a source image found in a directory together with its output path.
type job struct {
	src, dst string
	err      error
}

// Execute executes the image resizing process. Directories are processed
// recursively with a pool of concurrently running workers, one image per worker.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	logger := p.logger()

	spinner := utils.NewSpinner(fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ CARVER", utils.StatusMessage),
		utils.DecorateText("⇢ resizing image (be patient, it may take a while)...", utils.DefaultMessage),
	), 80*time.Millisecond, true)

	src := op.Src
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		defer os.Remove(f.Name())
		if err := f.Close(); err != nil {
			return err
		}
		src = f.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()
	spinner.Start()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		err = op.processDir(ctx, p, src, logger)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		ext := strings.ToLower(filepath.Ext(op.Dst))
		if op.Dst != op.PipeName && !isValidExtension(ext, outputExtensions) {
			err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
			break
		}
		err = op.process(ctx, p, src, op.Dst)
		op.printOpStatus(logger, op.Dst, err)
	default:
		err = fmt.Errorf("unsupported source: %s", op.Src)
	}

	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
			utils.DecorateText("⚡ CARVER", utils.StatusMessage),
			utils.DecorateText("resizing image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
		spinner.Stop()
		return err
	}
	spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
		utils.DecorateText("⚡ CARVER", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage),
	)
	spinner.Stop()

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// processDir resizes every supported image found under src and saves the results
// into the destination directory, keeping the layout of the source tree.
func (op *Ops) processDir(ctx context.Context, p *Processor, src string, logger *log.Logger) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(op.Dst)
	if err != nil {
		return err
	}
	if absSrc == absDst {
		return fmt.Errorf("%w: source and destination are the same directory", ErrDestinationConflict)
	}
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	jobs, errc := op.walkDir(done, src, absDst, inputExtensions)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(ctx, p, ch, done, jobs)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	for res := range ch {
		if res.err != nil && err == nil {
			err = res.err
		}
		op.printOpStatus(logger, res.path, res.err)
	}
	if walkErr := <-errc; walkErr != nil && err == nil {
		err = walkErr
	}
	return err
}

// consumer reads the jobs sent by the directory walker and calls the resizing processor against the source image.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	res chan<- result,
	done <-chan struct{},
	jobs <-chan job,
) {
	for j := range jobs {
		err := j.err
		if err == nil {
			if err = os.MkdirAll(filepath.Dir(j.dst), 0755); err == nil {
				err = op.process(ctx, p, j.src, j.dst)
			}
		}

		select {
		case <-done:
			return
		case res <- result{
			path: j.dst,
			err:  err,
		}:
		}
	}
}

// destination returns the output path of a source file found under root.
func (op *Ops) destination(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	// WebP can only be decoded, the result is saved as PNG.
	if ext := filepath.Ext(rel); strings.EqualFold(ext, ".webp") {
		rel = strings.TrimSuffix(rel, ext) + ".png"
	}
	return filepath.Join(op.Dst, rel), nil
}

// process calls the resizer method over the source image and returns the error in case exists.
// The destination file is removed when the resize fails.
func (op *Ops) process(ctx context.Context, p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}
	defer closeFile(src)

	err = p.Process(ctx, src, dst)
	closeFile(dst)

	if err != nil && out != op.PipeName {
		os.Remove(out)
	}
	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			closeFile(src)
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			closeFile(src)
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the image resizing process.
func (op *Ops) printOpStatus(logger *log.Logger, fname string, err error) {
	if err != nil {
		logger.Error("error resizing the image", "file", fname, "reason", err)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends a job for each supported image file to a new channel.
// The destination directory is skipped when it lies inside the source tree.
// A source which would overwrite the output of another one gets a job with an error.
// It finishes in case the done channel is getting closed.
func (op *Ops) walkDir(
	done <-chan struct{},
	src, skipDir string,
	srcExts []string,
) (<-chan job, <-chan error) {
	jobChan := make(chan job)
	errChan := make(chan error, 1)

	go func() {
		// Close the jobs channel after Walk returns.
		defer close(jobChan)

		seen := make(map[string]string)
		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if f.IsDir() {
				if abs, err := filepath.Abs(path); err == nil && abs == skipDir {
					return filepath.SkipDir
				}
				return nil
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !isValidExtension(strings.ToLower(filepath.Ext(f.Name())), srcExts) {
				return nil
			}

			dst, err := op.destination(src, path)
			if err != nil {
				return err
			}
			j := job{src: path, dst: dst}
			if prev, ok := seen[dst]; ok {
				j.err = fmt.Errorf("%w: %s and %s both map to %s", ErrDestinationConflict, prev, path, dst)
			} else {
				seen[dst] = path
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case jobChan <- j:
			}
			return nil
		})
	}()
	return jobChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}

// closeFile closes the file if the reader or writer is one, leaving the standard streams open.
func closeFile(v any) {
	if f, ok := v.(*os.File); ok && f != os.Stdin && f != os.Stdout {
		if err := f.Close(); err != nil {
			log.Warn("could not close the opened file", "file", f.Name(), "err", err)
		}
	}
}
