package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrUnavailable sinaliza timeout ou falha do vendor de IA.
// O caller pode tentar de novo com backoff; aqui dentro não há retry.
var ErrUnavailable = errors.New("ai service unavailable")

// Dispatcher executa chamadas externas de IA fora da goroutine do request,
// com limite de chamadas simultâneas e deadline por chamada.
type Dispatcher struct {
	slots   chan struct{}
	timeout time.Duration
}

func NewDispatcher(workers int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 8
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		slots:   make(chan struct{}, workers),
		timeout: timeout,
	}
}

type callResult struct {
	text string
	err  error
}

// Call roda fn numa goroutine própria, respeitando o limite de slots.
// Se o deadline estoura, devolve ErrUnavailable e o resultado tardio é
// descartado: o canal é bufferizado, a goroutine escreve e ninguém lê,
// então nenhum estado é escrito com base em resposta velha.
func (d *Dispatcher) Call(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	select {
	case d.slots <- struct{}{}:
	case <-ctx.Done():
		return "", fmt.Errorf("%w: dispatch queue full: %v", ErrUnavailable, ctx.Err())
	}

	results := make(chan callResult, 1)
	go func() {
		defer func() { <-d.slots }()
		text, err := fn(ctx)
		results <- callResult{text: text, err: err}
	}()

	select {
	case r := <-results:
		if r.err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, r.err)
		}
		return r.text, nil
	case <-ctx.Done():
		log.Printf("ai dispatcher: call abandoned after %s: %v", d.timeout, ctx.Err())
		return "", fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	}
}
