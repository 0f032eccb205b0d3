// Package lock serializes work on named resources.
//
// Two drivers implement the Locker interface:
//
//   - Local: an in-process semaphore per key. Suitable for a single replica.
//   - Redis: an advisory lock shared by all replicas. Acquisition is a
//     SET NX PX with a random token; release runs a compare-and-delete Lua
//     script so a holder whose lease expired cannot remove a newer holder's key.
//
// Both drivers block in Acquire until the key frees up or the context ends.
//
// # Usage
//
//	locker, err := lock.New(cfg.Lock, cfg.Redis)
//	lease, err := locker.Acquire(ctx, "countries:refresh")
//	if err != nil {
//	    return err
//	}
//	defer lease.Release(context.Background())
package lock
