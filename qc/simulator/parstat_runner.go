package simulator

import (
	"runtime"
	"sync"

	"github.com/qleap/qleap/qc/circuit"
)

// RunParallelStatic (static partition) – workers get equal shot counts,
// no channels.
func (s *Simulator) RunParallelStatic(c *circuit.Circuit) (map[string]int, error) {
	shots := s.Shots
	if shots <= 0 {
		shots = 1024
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > shots {
		workers = shots
	}

	per := shots / workers
	extra := shots % workers // first <extra> workers get +1

	s.log.Info().
		Int("shots", shots).
		Int("workers", workers).
		Int("qubits", c.NumQubits()).
		Int("gates", len(c.Gates())).
		Msg("sim: Starting RunParallelStatic")

	hist := make(map[string]int, shots)
	var mu sync.Mutex
	errChan := make(chan error, 1)

	wg := sync.WaitGroup{}
	for w := range workers {
		cnt := per
		if w < extra {
			cnt++
		}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for range n {
				key, err := s.runner.RunOnce(c)
				if err != nil {
					select { // capture first error
					case errChan <- err:
					default:
					}
					return
				}
				mu.Lock()
				hist[key]++
				mu.Unlock()
			}
		}(cnt)
	}

	wg.Wait()
	close(errChan)

	var firstErr error
	for err := range errChan {
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		s.log.Warn().Err(firstErr).Msg("sim: Run finished with error(s)")
	} else {
		s.log.Info().Int("shots", shots).Msg("sim: Run finished successfully")
	}

	return hist, firstErr
}
