package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppName(t *testing.T) string {
	return fmt.Sprintf("countdown-test-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("Countdown")
	assert.Equal(t, first, portFromName("Countdown"))
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestSecondInstanceActivatesFirst(t *testing.T) {
	name := testAppName(t)
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer func() {
		require.NoError(t, guard.Release())
	}()

	activated := make(chan struct{}, 1)
	guard.SetOnActivate(func() {
		activated <- struct{}{}
	})

	second, err := AcquireSingleInstance(name)
	assert.Nil(t, second)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	name := testAppName(t)
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	address := guard.Address()
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.Equal(t, address, again.Address())
	require.NoError(t, again.Release())
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Equal(t, "", guard.Address())
}
