package dto

import (
	"bytes"
	"testing"

	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestNewPropertyResponse_UnreadableAmenities(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter("test", &buf)
	t.Cleanup(func() { logger.Init("test") })

	p := &models.Property{Title: "Loft", Amenities: datatypes.JSON(`"not-a-list`)}
	p.ID = "prop-1"

	resp := NewPropertyResponse(p)
	assert.Equal(t, []string{}, resp.Amenities)
	assert.Contains(t, buf.String(), "Ignoring unreadable amenities")
	assert.Contains(t, buf.String(), "prop-1")
}

func TestNewPropertyResponse_EmptyAmenities(t *testing.T) {
	resp := NewPropertyResponse(&models.Property{Title: "Loft"})
	assert.Equal(t, []string{}, resp.Amenities)
	assert.Nil(t, resp.Owner)
}
