package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Teams is the ordered `teams` mapping, in document order.
type Teams []Team

// Get returns the record for name.
func (t Teams) Get(name string) (TeamRecord, bool) {
	for _, team := range t {
		if team.Name == name {
			return team.Record, true
		}
	}
	return TeamRecord{}, false
}

// Set replaces the record for name, appending when the team is new.
func (t *Teams) Set(name string, rec TeamRecord) {
	for i := range *t {
		if (*t)[i].Name == name {
			(*t)[i].Record = rec
			return
		}
	}
	*t = append(*t, Team{Name: name, Record: rec})
}

// UnmarshalJSON decodes an object while keeping key order.
func (t *Teams) UnmarshalJSON(data []byte) error {
	out := Teams{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var rec TeamRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("team %q: %w", key, err)
		}
		out.Set(key, rec)
		return nil
	})
	if err != nil {
		return err
	}
	*t = out
	return nil
}

// MarshalJSON encodes the teams as an object in slice order.
func (t Teams) MarshalJSON() ([]byte, error) {
	return encodeObject(len(t), func(i int) (string, any) { return t[i].Name, t[i].Record })
}

// Milestones is the ordered `milestoneStats` mapping, in document order.
type Milestones []Milestone

// Get returns the record for id.
func (m Milestones) Get(id string) (MilestoneRecord, bool) {
	for _, ms := range m {
		if ms.ID == id {
			return ms.Record, true
		}
	}
	return MilestoneRecord{}, false
}

// Set replaces the record for id, appending when the milestone is new.
func (m *Milestones) Set(id string, rec MilestoneRecord) {
	for i := range *m {
		if (*m)[i].ID == id {
			(*m)[i].Record = rec
			return
		}
	}
	*m = append(*m, Milestone{ID: id, Record: rec})
}

// UnmarshalJSON decodes an object while keeping key order.
func (m *Milestones) UnmarshalJSON(data []byte) error {
	out := Milestones{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var rec MilestoneRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("milestone %q: %w", key, err)
		}
		out.Set(key, rec)
		return nil
	})
	if err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON encodes the milestones as an object in slice order.
func (m Milestones) MarshalJSON() ([]byte, error) {
	return encodeObject(len(m), func(i int) (string, any) { return m[i].ID, m[i].Record })
}

// CustomAchievements holds snapshot-level custom achievements. Documents may
// store them as an array or as an object keyed by id; Keyed remembers which.
type CustomAchievements struct {
	Items []CustomAchievement
	Keyed bool
}

// UnmarshalJSON accepts an array, an object or null.
func (c *CustomAchievements) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*c = CustomAchievements{}
		return nil
	case trimmed[0] == '[':
		var items []CustomAchievement
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*c = CustomAchievements{Items: items}
		return nil
	}

	out := CustomAchievements{Keyed: true}
	err := decodeObject(trimmed, func(key string, raw json.RawMessage) error {
		var item CustomAchievement
		if err := json.Unmarshal(raw, &item); err != nil {
			return fmt.Errorf("custom achievement %q: %w", key, err)
		}
		item.ID = key
		out.Items = append(out.Items, item)
		return nil
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// MarshalJSON writes the same shape that was read.
func (c CustomAchievements) MarshalJSON() ([]byte, error) {
	if !c.Keyed {
		items := c.Items
		if items == nil {
			items = []CustomAchievement{}
		}
		return json.Marshal(items)
	}
	return encodeObject(len(c.Items), func(i int) (string, any) { return c.Items[i].ID, c.Items[i] })
}

// decodeObject walks a JSON object in document order. A null value decodes
// to nothing. A repeated key keeps its first position.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w, got %v", ErrNotObject, tok)
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("%w: non-string key %v", ErrNotObject, kt)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func encodeObject(n int, at func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		key, value := at(i)
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
