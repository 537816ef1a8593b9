package sse

import (
	"testing"
	"time"

	"github.com/hyperhustle/hustle-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "game_updated",
			data:      `{"game_id":"ABC234"}`,
			expected:  "event: game_updated\ndata: {\"game_id\":\"ABC234\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "notification",
			data:      "line1\nline2",
			expected:  "event: notification\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("ABC234", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "d_player1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("timer_tick", "data")

	select {
	case msg := <-client.send:
		expected := "event: timer_tick\ndata: data\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("ABC234", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "d_player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("ABC234", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client1 := NewClient(hub, "d_player1")
	client2 := NewClient(hub, "d_player2")
	client3 := NewClient(hub, "d_player3")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.BroadcastEvent("game_updated", "data")

	for i, client := range []*Client{client1, client2, client3} {
		select {
		case msg := <-client.send:
			expected := "event: game_updated\ndata: data\n\n"
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	hub1 := manager.GetOrCreateHub("ABC234")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	// Getting again should return the same hub
	hub2 := manager.GetOrCreateHub("ABC234")
	if hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same code")
	}

	hub3 := manager.GetOrCreateHub("XYZ789")
	if hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different code")
	}
}

func TestHubManager_CloseHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	manager.GetOrCreateHub("ABC234")
	manager.CloseHub("ABC234")

	if manager.GetHub("ABC234") != nil {
		t.Error("GetHub returned a hub after CloseHub")
	}
}
