package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditor_Add(t *testing.T) {
	t.Run("Trimmed and ordered", func(t *testing.T) {
		a := assert.New(t)
		sut := NewEditor()

		a.Nil(sut.Add(" rare "))
		a.Nil(sut.Add("silver"))

		a.Equal([]string{"rare", "silver"}, sut.Tags())
		a.Equal("", sut.Message())
	})
	t.Run("Duplicate is rejected", func(t *testing.T) {
		a := assert.New(t)
		sut := NewEditor("rare")

		a.ErrorIs(sut.Add("rare"), ErrDuplicate)

		a.Equal([]string{"rare"}, sut.Tags())
		a.Equal("This tag already exists", sut.Message())
	})
	t.Run("Match is case sensitive", func(t *testing.T) {
		a := assert.New(t)
		sut := NewEditor("rare")

		a.Nil(sut.Add("Rare"))
		a.Equal([]string{"rare", "Rare"}, sut.Tags())
	})
	t.Run("Whitespace is rejected", func(t *testing.T) {
		a := assert.New(t)
		sut := NewEditor()

		a.ErrorIs(sut.Add("   "), ErrEmpty)
		a.Empty(sut.Tags())
		a.Equal(EmptyMessage, sut.Message())
	})
	t.Run("Success clears the error", func(t *testing.T) {
		a := assert.New(t)
		sut := NewEditor("rare")
		_ = sut.Add("rare")

		a.Nil(sut.Add("gold"))
		a.Equal("", sut.Message())
	})
}

func TestEditor_KeyPress(t *testing.T) {
	a := assert.New(t)
	sut := NewEditor().WithEnabled(true)

	consumed, err := sut.KeyPress("a", "gold")
	a.False(consumed)
	a.Nil(err)

	consumed, err = sut.KeyPress(KeyEnter, "gold")
	a.True(consumed)
	a.Nil(err)

	_, err = sut.KeyPress(KeyEnter, "gold")
	a.ErrorIs(err, ErrDuplicate)
	a.Equal([]string{"gold"}, sut.Tags())

	sut.SetEnabled(false)
	consumed, _ = sut.KeyPress(KeyEnter, "silver")
	a.False(consumed)
}

func TestEditor_Remove(t *testing.T) {
	a := assert.New(t)
	sut := NewEditor("a", "b", "c")

	sut.Remove("b")
	sut.Remove("missing")

	a.Equal([]string{"a", "c"}, sut.Tags())
}

func TestEditor_Payload(t *testing.T) {
	a := assert.New(t)

	a.Nil(NewEditor("a").Payload())
	a.Nil(NewEditor().WithEnabled(true).Payload())
	a.Equal([]string{"a"}, NewEditor("a").WithEnabled(true).Payload())

	tags, send := NewEditor("a").EditPayload()
	a.False(send)
	a.Nil(tags)

	tags, send = NewEditor().WithEnabled(true).EditPayload()
	a.True(send)
	a.Empty(tags)
}
