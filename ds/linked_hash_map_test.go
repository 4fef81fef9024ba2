package ds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkedHashMap_Keys(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()

	assert.True(t, len(lhm.Keys()) == 0)

	lhm.Put("a", 1)
	lhm.Put("b", 2)
	lhm.Put("a", 1)

	assert.Equal(t, []string{"a", "b"}, lhm.Keys())
}

func TestLinkedHashMap_Put(t *testing.T) {
	lhm := NewLinkedHashMap[string, uint32]()
	assert.False(t, lhm.Put("abc", 1))
	assert.True(t, lhm.Put("abc", 2))

	assert.Equal(t, map[string]uint32{"abc": 2}, lhm.hashMap)
	assert.Equal(t, 1, lhm.Len())

	value, ok := lhm.Get("abc")
	assert.True(t, ok)
	assert.Equal(t, uint32(2), value)
}

func TestLinkedHashMap_MarshalJSON(t *testing.T) {
	inner := NewLinkedHashMap[string, any]()
	inner.Put("z", 1)

	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("def", 2)
	lhm.Put("abc", inner)

	bs, err := json.Marshal(lhm)
	require.NoError(t, err)

	assert.Equal(t, `{"def":2,"abc":{"z":1}}`, string(bs))
}
