package record

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, uint8(30), p.Age)
	assert.Equal(t, []string{"+44 1234567", "+44 2345678"}, p.Phones)
}

func TestDefault_ReturnsFreshPhones(t *testing.T) {
	first := Default()
	first.Phones[0] = "changed"

	second := Default()
	assert.Equal(t, "+44 1234567", second.Phones[0])
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	assert.Equal(t, `{"name":"John Doe","age":30,"phones":["+44 1234567","+44 2345678"]}`, string(data))
}

func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	var p Person
	require.NoError(t, json.Unmarshal(data, &p))

	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, uint8(30), p.Age)
	assert.Equal(t, []string{"+44 1234567", "+44 2345678"}, p.Phones)
}

func TestMarshal_PreservesPhoneOrder(t *testing.T) {
	p := Person{Name: "A", Age: 1, Phones: []string{"3", "1", "2"}}

	data, err := Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"A","age":1,"phones":["3","1","2"]}`, string(data))
}

func TestEncode(t *testing.T) {
	t.Run("json is compact", func(t *testing.T) {
		data, err := Encode(Default(), FormatJSON)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "\n")
	})

	t.Run("empty format falls back to json", func(t *testing.T) {
		data, err := Encode(Default(), "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), `{"name"`))
	})

	t.Run("yaml keeps field order", func(t *testing.T) {
		data, err := Encode(Default(), FormatYAML)
		require.NoError(t, err)

		out := string(data)
		assert.Less(t, strings.Index(out, "name:"), strings.Index(out, "age:"))
		assert.Less(t, strings.Index(out, "age:"), strings.Index(out, "phones:"))

		var p Person
		require.NoError(t, yaml.Unmarshal(data, &p))
		assert.Equal(t, Default(), p)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Encode(Default(), Format("toml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported record format")
	})
}
