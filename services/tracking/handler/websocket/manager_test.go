package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietship/shiptrack/internal/pkg/constants"
	"github.com/vietship/shiptrack/internal/pkg/models"
	"github.com/vietship/shiptrack/services/tracking"
	"github.com/vietship/shiptrack/services/tracking/mocks"
)

func testManager(t *testing.T) (*WebSocketManager, *mocks.MockTrackingUC, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockTrackingUC(ctrl)
	cfg := &models.Config{
		JWT: models.JWTConfig{Secret: "test-secret", Issuer: "test"},
	}
	return NewWebSocketManager(cfg, mockUC), mockUC, ctrl
}

// testSession builds a session without a live connection; writes become
// no-ops, which is all these routing tests need.
func testSession(m *WebSocketManager, connID, userID, role string) *session {
	return newSession(m, &models.WebSocketClient{
		ConnID: connID,
		UserID: userID,
		Role:   role,
	})
}

func rawMessage(t *testing.T, event string, payload interface{}) *models.WSMessage {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return &models.WSMessage{Event: event, Data: data}
}

func TestRouteMessage_UpdateLocationRequiresJoin(t *testing.T) {
	// Arrange: no EXPECT on the usecase; publishing into an unjoined
	// room must never reach it.
	m, _, ctrl := testManager(t)
	defer ctrl.Finish()

	s := testSession(m, "conn-1", "shipper-1", "shipper")

	msg := rawMessage(t, constants.EventUpdateLocation, models.UpdateLocationRequest{
		OrderID:  "order-1",
		Location: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101},
	})

	// Act + Assert: ctrl.Finish fails the test if the usecase is hit.
	m.routeMessage(s, msg)
}

func TestRouteMessage_JoinThenUpdate(t *testing.T) {
	// Arrange
	m, mockUC, ctrl := testManager(t)
	defer ctrl.Finish()

	s := testSession(m, "conn-1", "shipper-1", "shipper")

	mockUC.EXPECT().JoinRoom(gomock.Any(), tracking.Subject{UserID: "shipper-1", Role: "shipper"},
		"order-1", models.RoleShipper, gomock.Any()).
		Return(&models.TrackingInfo{OrderID: "order-1", ShippingStatus: models.StatusInTransit}, nil)
	mockUC.EXPECT().UpdateLocation(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.RouteEstimate{DurationSeconds: 600, DisplayText: "10 phút"}, nil)

	// Act
	m.routeMessage(s, rawMessage(t, constants.EventJoinRoom, models.JoinRoomRequest{
		OrderID: "order-1",
		Role:    models.RoleShipper,
	}))
	m.routeMessage(s, rawMessage(t, constants.EventUpdateLocation, models.UpdateLocationRequest{
		OrderID:  "order-1",
		Location: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101},
	}))

	// Assert
	assert.True(t, s.inRoom("order-1"))
}

func TestRouteMessage_JoinFailureDoesNotMarkMembership(t *testing.T) {
	m, mockUC, ctrl := testManager(t)
	defer ctrl.Finish()

	s := testSession(m, "conn-1", "stranger", "customer")

	mockUC.EXPECT().JoinRoom(gomock.Any(), gomock.Any(), "order-1", models.RoleViewer, gomock.Any()).
		Return(nil, tracking.ErrUnauthorized)

	m.routeMessage(s, rawMessage(t, constants.EventJoinRoom, models.JoinRoomRequest{OrderID: "order-1"}))

	assert.False(t, s.inRoom("order-1"))
}

func TestRouteMessage_LeaveEndsMembership(t *testing.T) {
	// Arrange
	m, mockUC, ctrl := testManager(t)
	defer ctrl.Finish()

	s := testSession(m, "conn-1", "customer-1", "customer")

	mockUC.EXPECT().JoinRoom(gomock.Any(), gomock.Any(), "order-1", models.RoleViewer, gomock.Any()).
		Return(&models.TrackingInfo{OrderID: "order-1"}, nil)
	mockUC.EXPECT().LeaveRoom(gomock.Any(), "order-1", "conn-1").Return(nil)

	// Act
	m.routeMessage(s, rawMessage(t, constants.EventJoinRoom, models.JoinRoomRequest{OrderID: "order-1"}))
	m.routeMessage(s, rawMessage(t, constants.EventLeaveRoom, models.LeaveRoomRequest{OrderID: "order-1"}))

	// A location update after leaving must not reach the usecase.
	m.routeMessage(s, rawMessage(t, constants.EventUpdateLocation, models.UpdateLocationRequest{
		OrderID:  "order-1",
		Location: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101},
	}))

	// Assert
	assert.False(t, s.inRoom("order-1"))
}

func TestRouteMessage_MembershipIsPerConnection(t *testing.T) {
	// Arrange: conn-1 joins; conn-2 for the same user does not.
	m, mockUC, ctrl := testManager(t)
	defer ctrl.Finish()

	joined := testSession(m, "conn-1", "shipper-1", "shipper")
	unjoined := testSession(m, "conn-2", "shipper-1", "shipper")

	mockUC.EXPECT().JoinRoom(gomock.Any(), gomock.Any(), "order-1", models.RoleShipper, gomock.Any()).
		Return(&models.TrackingInfo{OrderID: "order-1"}, nil)

	m.routeMessage(joined, rawMessage(t, constants.EventJoinRoom, models.JoinRoomRequest{
		OrderID: "order-1",
		Role:    models.RoleShipper,
	}))

	// Act: the unjoined connection tries to publish.
	m.routeMessage(unjoined, rawMessage(t, constants.EventUpdateLocation, models.UpdateLocationRequest{
		OrderID:  "order-1",
		Location: models.Coordinate{Latitude: 10.8414, Longitude: 106.8101},
	}))

	// Assert
	assert.True(t, joined.inRoom("order-1"))
	assert.False(t, unjoined.inRoom("order-1"))
}

func TestRouteMessage_MalformedPayload(t *testing.T) {
	m, _, ctrl := testManager(t)
	defer ctrl.Finish()

	s := testSession(m, "conn-1", "shipper-1", "shipper")

	m.routeMessage(s, &models.WSMessage{Event: constants.EventJoinRoom, Data: json.RawMessage(`{broken`)})
	m.routeMessage(s, &models.WSMessage{Event: "unknownEvent", Data: json.RawMessage(`{}`)})

	assert.False(t, s.inRoom("order-1"))
}

func TestNotify_NeverBlocksOnStalledConnection(t *testing.T) {
	// Arrange: no write loop is draining this session, standing in for
	// a peer whose TCP buffer is full.
	m, _, ctrl := testManager(t)
	defer ctrl.Finish()

	s := testSession(m, "conn-1", "customer-1", "customer")
	p := &participant{session: s, role: models.RoleViewer}

	// Act: fan out well past the queue capacity. Notify runs under the
	// caller's room mutex in production, so it must return regardless.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < outboundBuffer+16; i++ {
			p.Notify(constants.EventShipperMoved, models.ShipperMovedEvent{OrderID: "order-1"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fan-out blocked on a connection nobody drains")
	}

	// Assert: overflow dropped, queue capped, close is safe and late
	// events after disconnect are no-ops.
	assert.Len(t, s.outbound, outboundBuffer)
	s.closeQueue()
	s.closeQueue()
	p.Notify(constants.EventShipperMoved, models.ShipperMovedEvent{OrderID: "order-1"})
}
