package task

import "fmt"

const DefaultSlotKey = "tasks"

// Slot is a named key-value record. Read returns nil, nil for an absent key.
type Slot interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
}

// SlotPersister stores the collection as a JSON array under one slot key.
type SlotPersister struct {
	slot Slot
	key  string
}

func NewSlotPersister(slot Slot, key string) *SlotPersister {
	if key == "" {
		key = DefaultSlotKey
	}
	return &SlotPersister{slot: slot, key: key}
}

func (p *SlotPersister) Load() ([]Task, error) {
	data, err := p.slot.Read(p.key)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", p.key, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	tasks, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", p.key, err)
	}
	return tasks, nil
}

func (p *SlotPersister) Save(tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := p.slot.Write(p.key, data); err != nil {
		return fmt.Errorf("write slot %q: %w", p.key, err)
	}
	return nil
}
