package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("25.00")
	require.NoError(t, err)
	assert.True(t, m.Valid)
	assert.Equal(t, "25.00", m.String())

	m, err = ParseMoney("$19.5")
	require.NoError(t, err)
	assert.Equal(t, "19.50", m.String())

	m, err = ParseMoney("")
	require.NoError(t, err)
	assert.False(t, m.Valid)

	_, err = ParseMoney("twenty")
	assert.Error(t, err)
}

func TestMoney_JSON(t *testing.T) {
	m, _ := ParseMoney("25")
	b, err := json.Marshal(struct {
		Total Money `json:"total_price"`
	}{m})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_price":25.00}`, string(b))

	b, err = json.Marshal(Money{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var back Money
	require.NoError(t, json.Unmarshal([]byte(`"12.30"`), &back))
	assert.Equal(t, "12.30", back.String())
}

func TestMoney_ScanAndValue(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("7.25")))
	assert.Equal(t, "7.25", m.String())

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "7.25", v)

	require.NoError(t, m.Scan(nil))
	assert.False(t, m.Valid)
	v, err = m.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
