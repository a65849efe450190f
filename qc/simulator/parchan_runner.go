package simulator

import (
	"fmt"
	"sync"

	"github.com/qleap/qleap/qc/circuit"
)

// RunParallelChan executes the circuit with a channel fan-out of shot
// jobs and returns a histogram mapping bit-strings to counts.
func (s *Simulator) RunParallelChan(c *circuit.Circuit) (map[string]int, error) {
	s.log.Info().
		Int("shots", s.Shots).
		Int("workers", s.Workers).
		Int("qubits", c.NumQubits()).
		Int("gates", len(c.Gates())).
		Msg("sim: Starting RunParallelChan")

	hist := make(map[string]int)
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	errChan := make(chan error, s.Workers) // first error from each worker

	// fan-out jobs
	jobs := make(chan struct{}, s.Shots)
	for range s.Shots {
		jobs <- struct{}{}
	}
	close(jobs)

	for wid := range s.Workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var workerErr error

			for range jobs {
				if workerErr != nil {
					continue
				}

				key, err := s.runner.RunOnce(c)
				if err != nil {
					workerErr = fmt.Errorf("worker %d failed: %w", id, err)
					continue // let other workers finish
				}

				mu.Lock()
				hist[key]++
				mu.Unlock()
			}

			if workerErr != nil {
				select {
				case errChan <- workerErr:
				default:
					s.log.Warn().Err(workerErr).Int("worker_id", id).Msg("sim: Worker failed to send error (channel full?)")
				}
			}
		}(wid)
	}

	s.log.Debug().Msg("sim: Waiting for workers to finish...")
	wg.Wait()
	close(errChan)

	var firstErr error
	errCount := 0
	for err := range errChan {
		errCount++
		if firstErr == nil {
			firstErr = err
		}
	}

	if errCount > 0 {
		s.log.Warn().Err(firstErr).Int("error_count", errCount).Msgf("sim: Run finished with %d error(s)", errCount)
	} else {
		s.log.Info().Int("shots", s.Shots).Msg("sim: RunParallelChan finished successfully")
	}

	return hist, firstErr
}
