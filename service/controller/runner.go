package controller

import "sync"

// taskRunner executes provider-scoped tasks with bounded parallelism.
// Sync mode pins the width to one, which keeps providers in strict
// registry order; wider runs only need the width changed because the
// controller already guards its shared state.
type taskRunner struct {
	width int
}

func (r taskRunner) run(tasks []func()) {
	if r.width <= 1 {
		for _, task := range tasks {
			task()
		}
		return
	}

	sem := make(chan struct{}, r.width)
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			task()
		}()
	}
	wg.Wait()
}
