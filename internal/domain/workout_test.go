package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalVolume(t *testing.T) {
	tests := []struct {
		name      string
		exercises []Exercise
		want      float64
	}{
		{
			name: "sums sets x reps x weight",
			exercises: []Exercise{
				{Name: "Deadlift", Sets: 5, Reps: 3, Weight: 140},
				{Name: "Pull-up", Sets: 4, Reps: 8, Weight: 10},
			},
			want: 5*3*140 + 4*8*10,
		},
		{
			name: "bodyweight exercises contribute nothing",
			exercises: []Exercise{
				{Name: "Push-up", Sets: 3, Reps: 20, Weight: 0},
			},
			want: 0,
		},
		{
			name:      "no exercises",
			exercises: nil,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Workout{Exercises: tt.exercises, TotalVolume: 999}
			w.ComputeTotalVolume()
			assert.Equal(t, tt.want, w.TotalVolume)
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleMember))
	assert.True(t, ValidRole(RoleTrainer))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(Role("superuser")))
	assert.False(t, ValidRole(Role("")))
}
