// Package ebus is a topic based value bus. The last value of every topic is
// cached so late subscribers start with the current reading.
package ebus

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

var (
	ErrPublishFull = errors.New("publish channel full")
	ErrClosed      = errors.New("bus closed")
)

type EBusMessage struct {
	Topic string
	Data  float64
}

type Bus struct {
	subs      map[string][]chan float64
	subsMutex sync.Mutex

	subsAll      []chan *EBusMessage
	subsAllMutex sync.Mutex

	inChan       chan *EBusMessage
	unsubChan    chan chan float64
	unsubAllChan chan chan *EBusMessage
	quit         chan struct{}
	closeOnce    sync.Once
	cache        *ttlcache.Cache[string, float64]

	aggregators     []*EventAggregator
	aggregatorsLock sync.Mutex
}

// New starts a bus. Cached values expire after ttl.
func New(ttl time.Duration) *Bus {
	b := &Bus{
		subs:         make(map[string][]chan float64),
		inChan:       make(chan *EBusMessage, 100),
		unsubChan:    make(chan chan float64, 100),
		unsubAllChan: make(chan chan *EBusMessage, 100),
		quit:         make(chan struct{}),
		cache: ttlcache.New[string, float64](
			ttlcache.WithTTL[string, float64](ttl),
		),
	}
	go b.cache.Start()
	go b.run()
	return b
}

func (b *Bus) run() {
	for {
		select {
		case <-b.quit:
			b.shutdown()
			return
		case msg := <-b.inChan:
			if v := b.cache.Get(msg.Topic); v != nil {
				if v.Value() == msg.Data {
					continue
				}
			}
			b.cache.Set(msg.Topic, msg.Data, ttlcache.DefaultTTL)
			b.subsAllMutex.Lock()
			for _, sub := range b.subsAll {
				select {
				case sub <- msg:
				default:
				}
			}
			b.subsAllMutex.Unlock()
			b.subsMutex.Lock()
			for _, sub := range b.subs[msg.Topic] {
				select {
				case sub <- msg.Data:
				default:
				}
			}
			b.subsMutex.Unlock()
			b.aggregatorsLock.Lock()
			for _, agg := range b.aggregators {
				agg.fun(b, msg.Topic, msg.Data)
			}
			b.aggregatorsLock.Unlock()

		case unsub := <-b.unsubAllChan:
			b.subsAllMutex.Lock()
			for i, sub := range b.subsAll {
				if sub == unsub {
					b.subsAll = append(b.subsAll[:i], b.subsAll[i+1:]...)
					close(sub)
					break
				}
			}
			b.subsAllMutex.Unlock()
		case unsub := <-b.unsubChan:
			b.subsMutex.Lock()
		outer:
			for topic, subz := range b.subs {
				for i, sub := range subz {
					if sub == unsub {
						log.Println("Unsubscribe", topic)
						b.subs[topic] = append(subz[:i], subz[i+1:]...)
						close(unsub)
						if len(b.subs[topic]) == 0 {
							delete(b.subs, topic)
						}
						break outer
					}
				}
			}
			b.subsMutex.Unlock()
		}
	}
}

func (b *Bus) shutdown() {
	b.cache.Stop()
	b.subsMutex.Lock()
	for topic, subz := range b.subs {
		for _, sub := range subz {
			close(sub)
		}
		delete(b.subs, topic)
	}
	b.subsMutex.Unlock()
	b.subsAllMutex.Lock()
	for _, sub := range b.subsAll {
		close(sub)
	}
	b.subsAll = nil
	b.subsAllMutex.Unlock()
}

// Close stops the bus and closes every subscriber channel.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
}

func (b *Bus) closed() bool {
	select {
	case <-b.quit:
		return true
	default:
		return false
	}
}

func (b *Bus) Publish(topic string, data float64) error {
	if b.closed() {
		return ErrClosed
	}
	select {
	case b.inChan <- &EBusMessage{Topic: topic, Data: data}:
		return nil
	default:
		return ErrPublishFull
	}
}

// Last returns the cached value of topic.
func (b *Bus) Last(topic string) (float64, bool) {
	if itm := b.cache.Get(topic); itm != nil {
		return itm.Value(), true
	}
	return 0, false
}

// SubscribeAll returns a channel receiving every topic. On a closed bus the
// channel is already closed.
func (b *Bus) SubscribeAll() chan *EBusMessage {
	respChan := make(chan *EBusMessage, 100)
	b.subsAllMutex.Lock()
	defer b.subsAllMutex.Unlock()
	if b.closed() {
		close(respChan)
		return respChan
	}
	b.subsAll = append(b.subsAll, respChan)
	b.cache.Range(func(item *ttlcache.Item[string, float64]) bool {
		select {
		case respChan <- &EBusMessage{Topic: item.Key(), Data: item.Value()}:
			return true
		default:
			return false
		}
	})
	return respChan
}

func (b *Bus) SubscribeAllFunc(f func(topic string, value float64)) func() /*unsubscribe*/ {
	respChan := b.SubscribeAll()
	go func() {
		for v := range respChan {
			f(v.Topic, v.Data)
		}
	}()
	return func() {
		b.UnsubscribeAll(respChan)
	}
}

func (b *Bus) UnsubscribeAll(channel chan *EBusMessage) {
	select {
	case b.unsubAllChan <- channel:
	case <-b.quit:
	}
}

// SubscribeFunc returns a function that can be used to unsubscribe the function
func (b *Bus) SubscribeFunc(topic string, f func(float64)) func() {
	respChan := b.Subscribe(topic)
	go func() {
		for v := range respChan {
			f(v)
		}
	}()
	return func() {
		b.Unsubscribe(respChan)
	}
}

// Subscribe returns a channel receiving the values of topic, starting with
// the cached one. On a closed bus the channel is already closed.
func (b *Bus) Subscribe(topic string) chan float64 {
	respChan := make(chan float64, 100)
	b.subsMutex.Lock()
	defer b.subsMutex.Unlock()
	if b.closed() {
		close(respChan)
		return respChan
	}
	log.Println("Subscribe", topic)
	b.subs[topic] = append(b.subs[topic], respChan)
	if itm := b.cache.Get(topic); itm != nil {
		respChan <- itm.Value()
	}
	return respChan
}

func (b *Bus) Unsubscribe(channel chan float64) {
	select {
	case b.unsubChan <- channel:
	case <-b.quit:
	}
}
