package batch

import (
	"fmt"
	"sync"

	"HDDPull/internal/calc/hdd"
)

const MaxItems = 500

type PullBatchInput struct {
	Items []hdd.Request `json:"items"`
}

type PullBatchResult struct {
	Results []hdd.CalculationResult `json:"results"`
}

// CalculatePull evaluates each what-if case independently. Cases share no
// state, so they run concurrently and land in their input slot.
func CalculatePull(calc *hdd.Calculator, in PullBatchInput) (PullBatchResult, error) {
	if len(in.Items) == 0 {
		return PullBatchResult{}, fmt.Errorf("no items")
	}
	if len(in.Items) > MaxItems {
		return PullBatchResult{}, fmt.Errorf("too many items: %d > %d", len(in.Items), MaxItems)
	}

	results := make([]hdd.CalculationResult, len(in.Items))
	errs := make([]error, len(in.Items))
	var wg sync.WaitGroup
	for i, item := range in.Items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = calc.Compute(item.Pipe, item.Path)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return PullBatchResult{}, &ItemError{Index: i, Err: err}
		}
	}
	return PullBatchResult{Results: results}, nil
}

type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
