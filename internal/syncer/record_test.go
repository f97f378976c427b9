package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseArray() []testItem {
	return []testItem{{ID: "1", V: "a"}, {ID: "2", V: "b"}}
}

func TestAction_AddReplacesAndMovesToEnd(t *testing.T) {
	out := Add(testItem{ID: "2", V: "c"}).apply(baseArray())

	assert.Equal(t, []testItem{{ID: "1", V: "a"}, {ID: "2", V: "c"}}, out)

	// with a 3-element array, re-adding the first id moves it to the end
	three := []testItem{{ID: "1", V: "a"}, {ID: "2", V: "b"}, {ID: "3", V: "c"}}
	out = Add(testItem{ID: "1", V: "a2"}).apply(three)

	assert.Equal(t, []testItem{{ID: "2", V: "b"}, {ID: "3", V: "c"}, {ID: "1", V: "a2"}}, out)
}

func TestAction_AddGeneratesMissingID(t *testing.T) {
	out := Add(testItem{V: "new"}).apply(baseArray())

	require.Len(t, out, 3)
	added := out[2]
	assert.NotEmpty(t, added.ID)
	assert.NotEqual(t, "1", added.ID)
	assert.NotEqual(t, "2", added.ID)
	assert.Equal(t, "new", added.V)
}

func TestAction_UpdateInPlace(t *testing.T) {
	out := Update(testItem{ID: "1", V: "a2"}).apply(baseArray())

	assert.Equal(t, []testItem{{ID: "1", V: "a2"}, {ID: "2", V: "b"}}, out)
}

func TestAction_UpdateUnknownIDIsNoop(t *testing.T) {
	out := Update(testItem{ID: "9", V: "z"}).apply(baseArray())

	assert.Equal(t, baseArray(), out)
}

func TestAction_Delete(t *testing.T) {
	out := Delete[testItem]("1").apply(baseArray())
	assert.Equal(t, []testItem{{ID: "2", V: "b"}}, out)

	out = Delete[testItem]("9").apply(baseArray())
	assert.Equal(t, baseArray(), out)
}

func TestAction_ApplyDoesNotMutateBase(t *testing.T) {
	base := baseArray()

	_ = Update(testItem{ID: "1", V: "changed"}).apply(base)
	_ = Delete[testItem]("1").apply(base)

	assert.Equal(t, baseArray(), base)
}
