package app

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
	"github.com/dkeye/Rooms/internal/mocks"
)

func TestRoomManager_CreateRoom_IDFormat(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	pattern := regexp.MustCompile(`^[a-z0-9]{7}$`)

	seen := map[domain.RoomID]struct{}{}
	for i := 0; i < 200; i++ {
		id := m.CreateRoom()
		req.Regexp(pattern, string(id))
		_, dup := seen[id]
		req.False(dup, "duplicate live room id %s", id)
		seen[id] = struct{}{}
		req.True(m.DoesRoomExist(id))
	}
	req.Len(m.List(), 200)
}

func TestRoomManager_CreateRoom_RegeneratesOnCollision(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{NewID: fixedIDs("aaaaaaa", "aaaaaaa", "bbbbbbb")})

	first := m.CreateRoom()
	second := m.CreateRoom()

	req.Equal(domain.RoomID("aaaaaaa"), first)
	req.Equal(domain.RoomID("bbbbbbb"), second)
}

func TestRoomManager_GetRoom_EmptyRoom(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()

	snap, ok := m.GetRoom(id)
	req.True(ok)
	req.Equal(id, snap.ID)
	req.Empty(snap.ConnectedUsers)
	req.Nil(snap.CurrentSong)
	req.Zero(snap.Vote.NumVotedForSkip)

	_, ok = m.GetRoom("missing")
	req.False(ok)
	req.False(m.DoesRoomExist("missing"))
}

func TestRoomManager_Scenario(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{NewID: fixedIDs("ab12cd3")})

	// Given a fresh room
	id := m.CreateRoom()
	req.Equal(domain.RoomID("ab12cd3"), id)

	// When alice joins
	alice, aliceSig := newMember("u1", "alice")
	req.NoError(m.JoinRoom(id, alice))
	snap, _ := m.GetRoom(id)
	req.Len(snap.ConnectedUsers, 1)

	// And bob joins
	bob, bobSig := newMember("u2", "bob")
	req.NoError(m.JoinRoom(id, bob))

	// Then alice got her welcome and a join for bob
	aliceEvents := aliceSig.events(t)
	req.Len(aliceEvents, 2)
	join, ok := aliceEvents[1].(core.Join)
	req.True(ok)
	req.Equal(domain.UserID("u2"), join.UserID)
	req.Equal("bob", join.Username)

	// And bob got only a welcome listing both members
	bobEvents := bobSig.events(t)
	req.Len(bobEvents, 1)
	welcome, ok := bobEvents[0].(core.Welcome)
	req.True(ok)
	req.Equal(domain.UserID("u2"), welcome.UserID)
	req.Contains(welcome.RoomState.ConnectedUsers, domain.UserID("u1"))
	req.Contains(welcome.RoomState.ConnectedUsers, domain.UserID("u2"))

	// When alice leaves, bob is told
	req.NoError(m.LeaveRoom(id, alice))
	bobEvents = bobSig.events(t)
	req.Len(bobEvents, 2)
	left, ok := bobEvents[1].(core.Left)
	req.True(ok)
	req.Equal(domain.UserID("u1"), left.UserID)

	// When bob leaves, the room is gone
	req.NoError(m.LeaveRoom(id, bob))
	req.False(m.DoesRoomExist(id))
	req.Len(bobSig.events(t), 2)
	req.Empty(m.List())
}

func TestRoomManager_JoinRoom_WelcomeIncludesJoiner(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()
	p, sig := newMember("solo", "solo")

	req.NoError(m.JoinRoom(id, p))

	events := sig.events(t)
	req.Len(events, 1)
	w, ok := events[0].(core.Welcome)
	req.True(ok)
	req.Equal(id, w.RoomState.ID)
	req.Equal(core.MemberDTO{ID: "solo", Username: "solo"}, w.RoomState.ConnectedUsers["solo"])
}

func TestRoomManager_JoinRoom_ExclusionCorrectness(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()
	a, aSig := newMember("a", "anna")
	b, bSig := newMember("b", "ben")
	req.NoError(m.JoinRoom(id, a))
	req.NoError(m.JoinRoom(id, b))

	p, pSig := newMember("p", "pat")
	req.NoError(m.JoinRoom(id, p))

	for _, sig := range []*recordingSignal{aSig, bSig} {
		events := sig.events(t)
		last, ok := events[len(events)-1].(core.Join)
		req.True(ok)
		req.Equal(domain.UserID("p"), last.UserID)
	}
	pEvents := pSig.events(t)
	req.Len(pEvents, 1)
	req.Equal(core.EventWelcome, pEvents[0].Type())
}

func TestRoomManager_LeaveRoom_Notification(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()
	a, aSig := newMember("a", "anna")
	b, bSig := newMember("b", "ben")
	req.NoError(m.JoinRoom(id, a))
	req.NoError(m.JoinRoom(id, b))
	aBefore, bBefore := len(aSig.events(t)), len(bSig.events(t))

	req.NoError(m.LeaveRoom(id, b))

	aEvents := aSig.events(t)
	req.Len(aEvents, aBefore+1)
	left, ok := aEvents[aBefore].(core.Left)
	req.True(ok)
	req.Equal(domain.UserID("b"), left.UserID)
	req.Len(bSig.events(t), bBefore)
	req.True(m.DoesRoomExist(id))
}

func TestRoomManager_Errors(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	p, _ := newMember("u1", "alice")

	req.ErrorIs(m.JoinRoom("missing", p), core.ErrRoomNotFound)
	req.ErrorIs(m.LeaveRoom("missing", p), core.ErrRoomNotFound)

	id := m.CreateRoom()
	other, _ := newMember("u2", "bob")
	req.NoError(m.JoinRoom(id, other))
	req.ErrorIs(m.LeaveRoom(id, p), core.ErrParticipantNotInRoom)

	_, err := m.PublishAll("missing", core.NewLeft("x"))
	req.ErrorIs(err, core.ErrRoomNotFound)
	_, err = m.PublishAllBut("missing", core.NewLeft("x"), "u2")
	req.ErrorIs(err, core.ErrRoomNotFound)
	_, err = m.PublishTo("missing", core.NewLeft("x"), "u2")
	req.ErrorIs(err, core.ErrRoomNotFound)
	_, err = m.PublishTo(id, core.NewLeft("x"), "u1")
	req.ErrorIs(err, core.ErrParticipantNotInRoom)
}

func TestRoomManager_JoinRoom_AfterEviction(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()
	p, _ := newMember("u1", "alice")
	req.NoError(m.JoinRoom(id, p))
	req.NoError(m.LeaveRoom(id, p))

	req.ErrorIs(m.JoinRoom(id, p), core.ErrRoomNotFound)
}

func TestRoomManager_JoinRoom_SameIDOverwrites(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()
	first, _ := newMember("u1", "alice")
	second, _ := newMember("u1", "alice-again")

	req.NoError(m.JoinRoom(id, first))
	req.NoError(m.JoinRoom(id, second))

	snap, ok := m.GetRoom(id)
	req.True(ok)
	req.Len(snap.ConnectedUsers, 1)
	req.Equal("alice-again", snap.ConnectedUsers["u1"].Username)
}

func TestRoomManager_JoinRoom_MaxMembers(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{MaxMembers: 1})
	id := m.CreateRoom()
	a, _ := newMember("a", "anna")
	b, bSig := newMember("b", "ben")

	req.NoError(m.JoinRoom(id, a))
	req.ErrorIs(m.JoinRoom(id, b), core.ErrRoomFull)
	req.Empty(bSig.events(t))
}

// A participant in two rooms at once is not prevented by the manager;
// the orchestrator is what keeps one session in one room.
func TestRoomManager_DoubleJoinAcrossRooms(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	r1, r2 := m.CreateRoom(), m.CreateRoom()
	p, _ := newMember("u1", "alice")

	req.NoError(m.JoinRoom(r1, p))
	req.NoError(m.JoinRoom(r2, p))

	s1, _ := m.GetRoom(r1)
	s2, _ := m.GetRoom(r2)
	req.Contains(s1.ConnectedUsers, domain.UserID("u1"))
	req.Contains(s2.ConnectedUsers, domain.UserID("u1"))
}

func TestRoomManager_PublishPrimitives(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()
	sigs := map[string]*recordingSignal{}
	for _, name := range []string{"a", "b", "c"} {
		p, sig := newMember(name, name)
		req.NoError(m.JoinRoom(id, p))
		sigs[name] = sig
	}
	counts := func() map[string]int {
		out := map[string]int{}
		for name, sig := range sigs {
			out[name] = len(sig.events(t))
		}
		return out
	}

	before := counts()
	res, err := m.PublishAll(id, core.NewLeft("z"))
	req.NoError(err)
	req.Equal(3, res.SendTo)
	after := counts()
	for name := range sigs {
		req.Equal(before[name]+1, after[name])
	}

	before = after
	res, err = m.PublishAllBut(id, core.NewLeft("z"), "b")
	req.NoError(err)
	req.Equal(2, res.SendTo)
	after = counts()
	req.Equal(before["a"]+1, after["a"])
	req.Equal(before["b"], after["b"])
	req.Equal(before["c"]+1, after["c"])

	before = after
	res, err = m.PublishTo(id, core.NewLeft("z"), "c")
	req.NoError(err)
	req.Equal(1, res.SendTo)
	after = counts()
	req.Equal(before["a"], after["a"])
	req.Equal(before["b"], after["b"])
	req.Equal(before["c"]+1, after["c"])
}

func TestRoomManager_FailedSendDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{Policy: DropPolicy{}})
	id := m.CreateRoom()
	a, aSig := newMember("a", "anna")
	b, bSig := newMember("b", "ben")
	c, cSig := newMember("c", "cleo")
	for _, p := range []*core.Participant{a, b, c} {
		req.NoError(m.JoinRoom(id, p))
	}
	bSig.fail = true
	aBefore, cBefore := len(aSig.events(t)), len(cSig.events(t))

	res, err := m.PublishAll(id, core.NewLeft("z"))
	req.NoError(err)
	req.Equal(2, res.SendTo)
	req.Len(res.Dropped, 1)
	req.Equal(domain.UserID("b"), res.Dropped[0].ID())
	req.Len(aSig.events(t), aBefore+1)
	req.Len(cSig.events(t), cBefore+1)
	req.False(bSig.isClosed())
}

func TestRoomManager_KickPolicyClosesFailingMember(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewRoomManager(RoomManagerConfig{Policy: SimplePolicy{}})
	id := m.CreateRoom()
	a, _ := newMember("a", "anna")
	req.NoError(m.JoinRoom(id, a))

	// Given a member whose channel refuses every frame
	conn := mocks.NewMockSignalConnection(ctrl)
	conn.EXPECT().TrySend(gomock.Any()).Return(errSendFailed).Times(1)
	conn.EXPECT().Close().Times(1)
	slow := core.NewParticipant(&domain.User{ID: "slow", Username: "slow"}, core.NewAddress("10.0.0.1", 1, conn))

	// When it joins, the welcome fails and the member is kicked
	req.NoError(m.JoinRoom(id, slow))
}

func TestRoomManager_ConcurrentRooms(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	var wg sync.WaitGroup

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := m.CreateRoom()
			anchor, _ := newMember(fmt.Sprintf("%s-anchor", id), "anchor")
			if err := m.JoinRoom(id, anchor); err != nil {
				t.Error(err)
				return
			}
			var inner sync.WaitGroup
			for i := 0; i < 20; i++ {
				inner.Add(1)
				go func(i int) {
					defer inner.Done()
					p, _ := newMember(fmt.Sprintf("%s-%d", id, i), "guest")
					if err := m.JoinRoom(id, p); err != nil {
						t.Error(err)
						return
					}
					_, _ = m.GetRoom(id)
					if err := m.LeaveRoom(id, p); err != nil {
						t.Error(err)
					}
				}(i)
			}
			inner.Wait()
			if err := m.LeaveRoom(id, anchor); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	req.Empty(m.List())
}

func TestRoomManager_JoinOrderingPerRecipient(t *testing.T) {
	req := require.New(t)
	m := NewRoomManager(RoomManagerConfig{})
	id := m.CreateRoom()
	watcher, watcherSig := newMember("watcher", "watcher")
	req.NoError(m.JoinRoom(id, watcher))

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, _ := newMember(fmt.Sprintf("p%d", i), "guest")
			if err := m.JoinRoom(id, p); err != nil {
				t.Error(err)
				return
			}
			if err := m.LeaveRoom(id, p); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	// every participant's Join reaches the watcher before its Left
	seenJoin := map[domain.UserID]bool{}
	for _, e := range watcherSig.events(t)[1:] {
		switch ev := e.(type) {
		case core.Join:
			seenJoin[ev.UserID] = true
		case core.Left:
			req.True(seenJoin[ev.UserID], "left before join for %s", ev.UserID)
		}
	}
	req.Len(seenJoin, 30)
}
