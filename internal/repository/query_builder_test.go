package repository

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
)

func TestConditions_BuildConditions(t *testing.T) {
	conditions := NewQueryBuilder().
		AddCondition("facility", "F2").
		AddCondition("status", "").
		AddCondition("asset_class", "ONVIF")

	assert.Equal(t, 2, conditions.Len())
	assert.Equal(t, goqu.Ex{
		"f.external_id": "F2",
		"asset_class":   "ONVIF",
	}, conditions.BuildConditions(map[string]string{"facility": "f.external_id"}))
}
