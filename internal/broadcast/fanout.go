package broadcast

import "errors"

type fanout []Publisher

// NewFanout publishes every event to each of pubs. All publishers are tried;
// their errors are joined.
func NewFanout(pubs ...Publisher) Publisher {
	return fanout(pubs)
}

func (f fanout) Publish(topic string, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(topic, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
