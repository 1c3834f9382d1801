package ai

import "sync"

// keyedMutex serializa operações pela chave (ex: "42:guardian" ou "user:42").
// Chaves distintas seguem totalmente em paralelo. Os mutexes nunca são
// liberados do mapa; o universo de chaves é usuários x seções, pequeno.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[string]*sync.Mutex{}}
}

// Lock trava a chave e devolve a função de unlock.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
