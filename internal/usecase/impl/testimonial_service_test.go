package impl

import (
	"context"
	"testing"

	"pawparadise/internal/domain/entity"
	mockRepo "pawparadise/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestimonialService_ListTestimonials(t *testing.T) {
	ctx := context.Background()
	repo := mockRepo.NewMockTestimonialRepository(t)
	testimonials := []*entity.Testimonial{{Name: "Sam", Rating: 5}}
	repo.EXPECT().List(ctx).Return(testimonials, nil)

	got, err := NewTestimonialService(repo).ListTestimonials(ctx)

	require.NoError(t, err)
	assert.Equal(t, testimonials, got)
}
