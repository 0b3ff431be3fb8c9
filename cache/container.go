// Copyright 2025 Flamehaven
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cache

import (
	"container/list"
	"time"
)

// entry is a stored value with its insertion and expiry times. Entries
// are owned exclusively by the cache that created them and are never
// mutated after insertion; an update is a full replacement.
type entry struct {
	value      any
	insertedAt time.Time
	expiresAt  time.Time // zero means no expiry
}

// container is the storage primitive beneath a cache. Every operation
// returns an explicit outcome so the cache layer can interpret faults
// and contain them instead of letting them escape to callers.
type container interface {
	get(key string) (entry, bool, error)
	put(key string, e entry) error
	delete(key string) error
	touch(key string) error
	evictOldest() (string, bool, error)
	len() (int, error)
	clear() error
}

// lruContainer keeps entries in a map with a doubly-linked recency
// list; the back of the list is the least recently used key. It is not
// itself synchronized: the owning cache serializes access.
type lruContainer struct {
	entries map[string]*list.Element
	order   *list.List
}

type lruItem struct {
	key string
	ent entry
}

func newLRUContainer() *lruContainer {
	return &lruContainer{
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *lruContainer) get(key string) (entry, bool, error) {
	elem, ok := c.entries[key]
	if !ok {
		return entry{}, false, nil
	}
	return elem.Value.(*lruItem).ent, true, nil
}

func (c *lruContainer) put(key string, e entry) error {
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*lruItem).ent = e
		c.order.MoveToFront(elem)
		return nil
	}
	c.entries[key] = c.order.PushFront(&lruItem{key: key, ent: e})
	return nil
}

func (c *lruContainer) delete(key string) error {
	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}
	return nil
}

func (c *lruContainer) touch(key string) error {
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
	}
	return nil
}

func (c *lruContainer) evictOldest() (string, bool, error) {
	elem := c.order.Back()
	if elem == nil {
		return "", false, nil
	}
	key := elem.Value.(*lruItem).key
	c.order.Remove(elem)
	delete(c.entries, key)
	return key, true, nil
}

func (c *lruContainer) len() (int, error) {
	return c.order.Len(), nil
}

func (c *lruContainer) clear() error {
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

var _ container = (*lruContainer)(nil)
