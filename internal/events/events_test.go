package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "mow/meals/created", Topic("mow", MealCreated))
	assert.Equal(t, "mow/meals/deleted", Topic("mow/", MealDeleted))
	assert.Equal(t, "meals/imported", Topic("", MealImported))
}

func TestMealEventJSON(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b, err := json.Marshal(MealEvent{Event: MealCreated, MealID: 4, Name: "Soup", At: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"created","meal_id":4,"name":"Soup","at":"2024-05-01T12:00:00Z"}`, string(b))

	b, err = json.Marshal(MealEvent{Event: MealImported, Count: 3, At: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"imported","count":3,"at":"2024-05-01T12:00:00Z"}`, string(b))
}

func TestNewWithoutBrokerIsNop(t *testing.T) {
	p, err := New("", "test", "mow")
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), MealEvent{Event: MealCreated}))
	p.Close()
}

func TestNewMQTTPublisherUnreachableBroker(t *testing.T) {
	_, err := NewMQTTPublisher("tcp://127.0.0.1:1", "test", "mow", time.Second)
	assert.Error(t, err)
}
