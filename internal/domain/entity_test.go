package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProject(t *testing.T) {
	entity := NewProject("api rewrite")
	assert.Equal(t, "api rewrite", entity.Name)
	assert.Equal(t, KindProject, entity.Kind)
	assert.Equal(t, PriorityDefault, entity.Priority)
	assert.False(t, entity.IsBackground())
}

func TestNewBackgroundTask(t *testing.T) {
	entity := NewBackgroundTask("ci babysitting")
	assert.Equal(t, KindBackgroundTask, entity.Kind)
	assert.True(t, entity.IsBackground())
}

func TestEntity_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		entity   Entity
		expected bool
	}{
		{
			name:     "valid project",
			entity:   Entity{Name: "x", Kind: KindProject, Priority: 3},
			expected: true,
		},
		{
			name:     "empty name",
			entity:   Entity{Name: "", Kind: KindProject, Priority: 3},
			expected: false,
		},
		{
			name:     "unknown kind",
			entity:   Entity{Name: "x", Kind: "chore", Priority: 3},
			expected: false,
		},
		{
			name:     "priority below range",
			entity:   Entity{Name: "x", Kind: KindProject, Priority: 0},
			expected: false,
		},
		{
			name:     "priority above range",
			entity:   Entity{Name: "x", Kind: KindProject, Priority: 6},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entity.IsValid())
		})
	}
}

func TestEntity_HasTag(t *testing.T) {
	entity := Entity{Name: "x", Tags: []string{"deep-work", "backend"}}
	assert.True(t, entity.HasTag("backend"))
	assert.False(t, entity.HasTag("frontend"))
	assert.False(t, Entity{Name: "y"}.HasTag("backend"))
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "Critical", PriorityLabel(1))
	assert.Equal(t, "Medium", PriorityLabel(3))
	assert.Equal(t, "Very Low", PriorityLabel(5))
	assert.Equal(t, "Medium", PriorityLabel(42))
}
