package minerdata

import (
	"context"
	"fmt"
	"sync"

	"github.com/bodgit/minerdata/cavern"
)

// CavernError reports the cavern record that failed to read or decode.
type CavernError struct {
	Index  int
	Offset int64
	Err    error
}

func (e *CavernError) Error() string {
	return fmt.Sprintf("cavern %d at offset %#x: %v", e.Index, e.Offset, e.Err)
}

func (e *CavernError) Unwrap() error {
	return e.Err
}

type chunk struct {
	index int
	b     []byte
}

func generateChunks(ctx context.Context, chunks [][]byte) <-chan chunk {
	out := make(chan chunk)
	go func() {
		defer close(out)
		for i, b := range chunks {
			select {
			case out <- chunk{i, b}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Each cavern only ever writes its own slot so no locking is needed
func (m *MinerData) cavernWorker(ctx context.Context, in <-chan chunk, caverns []*cavern.Cavern) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for c := range in {
			cav, err := cavern.Decode(c.b)
			if err != nil {
				errc <- &CavernError{
					Index:  c.index,
					Offset: int64(CavernsOffsetBytes + c.index*CavernSizeBytes),
					Err:    err,
				}
				return
			}
			caverns[c.index] = cav

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errc
}

// Drains every worker and returns the error for the lowest cavern index. Any
// other error only wins if no cavern failed.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first *CavernError
	var other error
	for err := range mergeErrors(errs...) {
		if err == nil {
			continue
		}
		cancel()
		ce, ok := err.(*CavernError)
		if !ok {
			if other == nil {
				other = err
			}
			continue
		}
		if first == nil || ce.Index < first.Index {
			first = ce
		}
	}
	if first != nil {
		return first
	}
	return other
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (m *MinerData) decodeCaverns(chunks [][]byte) ([]*cavern.Cavern, error) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	caverns := make([]*cavern.Cavern, len(chunks))

	in := generateChunks(ctx, chunks)

	workers := m.workers
	if workers < 1 {
		workers = 1
	}

	var errcList []<-chan error
	for i := 0; i < workers; i++ {
		errcList = append(errcList, m.cavernWorker(ctx, in, caverns))
	}

	if err := waitForPipeline(cancelFunc, errcList...); err != nil {
		return nil, err
	}

	return caverns, nil
}
