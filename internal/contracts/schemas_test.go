package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePropertySubmission_Valid(t *testing.T) {
	body := []byte(`{
		"title": "Bán căn hộ chung cư Thanh Xuân 72m2",
		"description": "View đẹp, nội thất đầy đủ",
		"price": 2500,
		"area": 72.5,
		"district": "Thanh Xuân",
		"city": "Hà Nội",
		"bedrooms": 2,
		"bathrooms": 2,
		"propertyType": "can-ho-chung-cu",
		"legalStatus": "so-do-so-hong",
		"interior": "day-du",
		"direction": "dong-nam",
		"balconyDirection": "dong-nam"
	}`)
	assert.NoError(t, ValidatePropertySubmission(body))
}

func TestValidatePropertySubmission_MissingRequired(t *testing.T) {
	body := []byte(`{"title": "Bán căn hộ chung cư Thanh Xuân"}`)
	err := ValidatePropertySubmission(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidatePropertySubmission_UnknownEnumValue(t *testing.T) {
	body := []byte(`{
		"title": "Bán căn hộ chung cư Thanh Xuân 72m2",
		"price": 2500,
		"area": 72.5,
		"district": "Thanh Xuân",
		"city": "Hà Nội",
		"propertyType": "lau-dai"
	}`)
	assert.Error(t, ValidatePropertySubmission(body))
}

func TestValidatePropertySubmission_NonPositivePrice(t *testing.T) {
	body := []byte(`{
		"title": "Bán căn hộ chung cư Thanh Xuân 72m2",
		"price": 0,
		"area": 72.5,
		"district": "Thanh Xuân",
		"city": "Hà Nội",
		"propertyType": "can-ho-chung-cu"
	}`)
	assert.Error(t, ValidatePropertySubmission(body))
}

func TestValidatePropertySubmission_MalformedJSON(t *testing.T) {
	err := ValidatePropertySubmission([]byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JSON")
}

func TestValidateRequest_UnknownSchema(t *testing.T) {
	err := ValidateRequest("NoSuchRequest", "1.0.0", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
