package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryKeyHasDistinctText(t *testing.T) {
	seen := map[string]Key{}
	for _, k := range Keys() {
		text := Get(k)
		assert.NotEqual(t, string(k), text, "missing text for %s", k)
		if prev, ok := seen[text]; ok {
			t.Errorf("%s and %s share text %q", prev, k, text)
		}
		seen[text] = k
	}
	assert.Len(t, table, len(Keys()))
}

func TestGetUnknown(t *testing.T) {
	assert.Equal(t, "Nope", Get(Key("Nope")))
}

func TestSourceStrings(t *testing.T) {
	assert.Equal(t, "Токен недействителен", Get(TokenInvalid))
	assert.Equal(t, "Не удалось выйти", Get(LogoutFailed))
}
