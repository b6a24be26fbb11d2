package ebus

type EventAggregatorFunc func(b *Bus, name string, value float64)

// EventAggregator derives new topics from published values. It runs on the
// bus goroutine.
type EventAggregator struct {
	fun EventAggregatorFunc
}

func (b *Bus) RegisterAggregator(aggs ...*EventAggregator) {
	b.aggregatorsLock.Lock()
	defer b.aggregatorsLock.Unlock()
outer:
	for _, agg := range aggs {
		for _, existing := range b.aggregators {
			if existing == agg {
				continue outer
			}
		}
		b.aggregators = append(b.aggregators, agg)
	}
}

// DIFFAggregator publishes second-first on outputName once both topics have
// been updated.
func DIFFAggregator(first, second, outputName string) *EventAggregator {
	var firstUpdated, secondUpdated bool
	var firstValue, secondValue float64
	return &EventAggregator{
		fun: func(b *Bus, name string, value float64) {
			if name == first {
				firstValue = value
				firstUpdated = true
			}
			if name == second {
				secondValue = value
				secondUpdated = true
			}
			if firstUpdated && secondUpdated {
				b.Publish(outputName, secondValue-firstValue)
				firstUpdated, secondUpdated = false, false
			}
		},
	}
}
