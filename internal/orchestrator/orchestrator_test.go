package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicegraph/internal/dependency"
	"servicegraph/internal/services"
)

// journal records lifecycle calls across services in the order they happen.
type journal struct {
	entries []string
}

func (j *journal) record(op, name string) {
	j.entries = append(j.entries, op+":"+name)
}

// only returns the entries for op, without the prefix.
func (j *journal) only(op string) []string {
	var names []string
	for _, e := range j.entries {
		if len(e) > len(op)+1 && e[:len(op)+1] == op+":" {
			names = append(names, e[len(op)+1:])
		}
	}
	return names
}

func (j *journal) reset() {
	j.entries = nil
}

// mockService implements services.ServiceVertex for testing.
type mockService struct {
	name     string
	log      *journal
	running  bool
	startErr error
	stopErr  error
	crash    services.CrashHandler
	wired    int
}

func (m *mockService) Name() string { return m.name }

func (m *mockService) Start(ctx context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.running = true
	m.log.record("start", m.name)
	return nil
}

func (m *mockService) Stop(ctx context.Context) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.running = false
	m.log.record("stop", m.name)
	return nil
}

func (m *mockService) SetCrashHandler(handler services.CrashHandler) {
	m.crash = handler
	m.wired++
}

// crashNow simulates the service detecting its own failure.
func (m *mockService) crashNow() error {
	m.running = false
	if m.crash == nil {
		return nil
	}
	return m.crash(fmt.Errorf("%s crashed", m.name))
}

type fixture struct {
	graph    *Graph
	log      *journal
	services map[string]*mockService
	nodes    map[string]*services.ServiceNode
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()
	f := &fixture{
		graph:    dependency.New[*services.ServiceNode](),
		log:      &journal{},
		services: make(map[string]*mockService),
		nodes:    make(map[string]*services.ServiceNode),
	}
	for _, name := range names {
		f.add(t, name)
	}
	return f
}

func (f *fixture) add(t *testing.T, name string) *mockService {
	t.Helper()
	svc := &mockService{name: name, log: f.log}
	node, err := services.NewServiceNode(svc)
	require.NoError(t, err)
	_, err = f.graph.AddNode(node)
	require.NoError(t, err)
	f.services[name] = svc
	f.nodes[name] = node
	return svc
}

func (f *fixture) requires(t *testing.T, from string, to ...string) {
	t.Helper()
	targets := make([]*services.ServiceNode, 0, len(to))
	for _, name := range to {
		targets = append(targets, f.nodes[name])
	}
	require.NoError(t, f.graph.AddEdges(f.nodes[from], targets))
}

func (f *fixture) svc(name string) services.ServiceVertex {
	return f.services[name]
}

func (f *fixture) running() []string {
	var names []string
	for _, node := range f.graph.Nodes() {
		if node.IsStarted() {
			names = append(names, node.String())
		}
	}
	return names
}

// newExampleFixture builds the four service graph A->B, C->A, D->{B,C}.
//
//	A ----> B
//	^       ^
//	|       |
//	C <---- D
func newExampleFixture(t *testing.T) (*fixture, *Controller) {
	t.Helper()
	f := newFixture(t, "A", "B", "C", "D")
	f.requires(t, "A", "B")
	f.requires(t, "C", "A")
	f.requires(t, "D", "B", "C")

	c, err := New(f.graph)
	require.NoError(t, err)
	return f, c
}

func names(svcs []services.ServiceVertex) []string {
	out := make([]string, len(svcs))
	for i, s := range svcs {
		out[i] = services.NameOf(s)
	}
	return out
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, dependency.ErrNilArgument)

	f, _ := newExampleFixture(t)
	for name, svc := range f.services {
		assert.NotNil(t, svc.crash, "crash handler of %s", name)
		assert.Equal(t, 1, svc.wired)
	}
}

func TestStartService_StartsRequirementsFirst(t *testing.T) {
	f, c := newExampleFixture(t)

	require.NoError(t, c.StartService(context.Background(), f.svc("C")))

	assert.Equal(t, []string{"B", "A", "C"}, f.log.only("start"))
	assert.Equal(t, []string{"A", "B", "C"}, f.running())
	assert.False(t, c.IsRunning(f.svc("D")))
	assert.True(t, c.IsRunning(f.svc("C")))
}

func TestStartService_FullOrder(t *testing.T) {
	f, c := newExampleFixture(t)

	require.NoError(t, c.StartService(context.Background(), f.svc("D")))

	assert.Equal(t, []string{"B", "A", "C", "D"}, f.log.only("start"))
}

func TestStartService_Idempotent(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()

	require.NoError(t, c.StartService(ctx, f.svc("D")))
	f.log.reset()

	require.NoError(t, c.StartService(ctx, f.svc("D")))
	require.NoError(t, c.StartService(ctx, f.svc("A")))
	assert.Empty(t, f.log.entries)
}

func TestStartServices_Batch(t *testing.T) {
	f, c := newExampleFixture(t)

	err := c.StartServices(context.Background(), []services.ServiceVertex{f.svc("D"), f.svc("B"), f.svc("D")})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C", "D"}, f.log.only("start"))

	assert.ErrorIs(t, c.StartServices(context.Background(), nil), dependency.ErrNilArgument)
	require.NoError(t, c.StartServices(context.Background(), []services.ServiceVertex{}))
}

func TestStartService_Diamond(t *testing.T) {
	//      top
	//     /   \
	//  left   right
	//     \   /
	//     base
	f := newFixture(t, "base", "left", "right", "top")
	f.requires(t, "left", "base")
	f.requires(t, "right", "base")
	f.requires(t, "top", "left", "right")
	c, err := New(f.graph)
	require.NoError(t, err)

	require.NoError(t, c.StartService(context.Background(), f.svc("top")))
	assert.Equal(t, []string{"base", "left", "right", "top"}, f.log.only("start"))
}

func TestStartService_ArgumentErrors(t *testing.T) {
	f, c := newExampleFixture(t)

	err := c.StartService(context.Background(), nil)
	assert.ErrorIs(t, err, dependency.ErrNilArgument)

	stranger := &mockService{name: "stranger", log: f.log}
	err = c.StartService(context.Background(), stranger)
	assert.ErrorIs(t, err, dependency.ErrNotMember)
	assert.Contains(t, err.Error(), "stranger")

	err = c.StopService(context.Background(), nil)
	assert.ErrorIs(t, err, dependency.ErrNilArgument)
	err = c.StopService(context.Background(), stranger)
	assert.ErrorIs(t, err, dependency.ErrNotMember)
	assert.ErrorIs(t, c.StopServices(context.Background(), nil), dependency.ErrNilArgument)

	assert.Empty(t, f.log.entries)
}

func TestStartService_FailureIsNotRolledBack(t *testing.T) {
	f, c := newExampleFixture(t)
	boom := errors.New("boom")
	f.services["C"].startErr = boom

	err := c.StartService(context.Background(), f.svc("D"))
	assert.Same(t, boom, err, "service error propagates unchanged")

	assert.Equal(t, []string{"B", "A"}, f.log.only("start"))
	assert.Empty(t, f.log.only("stop"))
	assert.Equal(t, []string{"A", "B"}, f.running())

	// Once the cause is gone the start picks up where it failed.
	f.services["C"].startErr = nil
	f.log.reset()
	require.NoError(t, c.StartService(context.Background(), f.svc("D")))
	assert.Equal(t, []string{"C", "D"}, f.log.only("start"))
}

func TestStopService_CascadesToDependents(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()
	require.NoError(t, c.StartService(ctx, f.svc("D")))
	f.log.reset()

	require.NoError(t, c.StopService(ctx, f.svc("B")))

	assert.Equal(t, []string{"D", "C", "A", "B"}, f.log.only("stop"))
	assert.Empty(t, f.running())

	assert.Equal(t, StopReasonManual, c.StopReason(f.svc("B")))
	assert.Equal(t, StopReasonDependency, c.StopReason(f.svc("A")))
	assert.Equal(t, StopReasonDependency, c.StopReason(f.svc("D")))
}

func TestStopService_LeavesRequirementsRunning(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()
	require.NoError(t, c.StartService(ctx, f.svc("D")))
	f.log.reset()

	require.NoError(t, c.StopService(ctx, f.svc("D")))
	assert.Equal(t, []string{"D"}, f.log.only("stop"))
	assert.Equal(t, []string{"A", "B", "C"}, f.running())
}

func TestStopService_SkipsStoppedDependents(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()
	require.NoError(t, c.StartService(ctx, f.svc("C")))
	f.log.reset()

	// D was never started, so only C and A go before B.
	require.NoError(t, c.StopService(ctx, f.svc("B")))
	assert.Equal(t, []string{"C", "A", "B"}, f.log.only("stop"))
	assert.Equal(t, StopReasonNone, c.StopReason(f.svc("D")))
}

func TestStopService_NotRunningStillStopsTarget(t *testing.T) {
	f, c := newExampleFixture(t)

	require.NoError(t, c.StopService(context.Background(), f.svc("A")))
	assert.Equal(t, []string{"A"}, f.log.only("stop"))
}

func TestStopService_FailureIsNotRolledBack(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()
	require.NoError(t, c.StartService(ctx, f.svc("D")))
	f.log.reset()

	boom := errors.New("stuck")
	f.services["C"].stopErr = boom

	err := c.StopService(ctx, f.svc("B"))
	assert.Same(t, boom, err)
	assert.Equal(t, []string{"D"}, f.log.only("stop"))
	assert.Empty(t, f.log.only("start"))
	assert.Equal(t, []string{"A", "B", "C"}, f.running())
}

func TestStopServices_Batch(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()
	batch := []services.ServiceVertex{f.svc("D"), f.svc("B")}
	require.NoError(t, c.StartServices(ctx, batch))
	f.log.reset()

	require.NoError(t, c.StopServices(ctx, batch))
	assert.Equal(t, []string{"D", "C", "A", "B"}, f.log.only("stop"))
	assert.Empty(t, f.running())
}

func TestCrash_IsAStopRequest(t *testing.T) {
	crashed, cc := newExampleFixture(t)
	stopped, sc := newExampleFixture(t)
	ctx := context.Background()

	require.NoError(t, cc.StartService(ctx, crashed.svc("D")))
	require.NoError(t, sc.StartService(ctx, stopped.svc("D")))
	crashed.log.reset()
	stopped.log.reset()

	require.NoError(t, crashed.services["B"].crashNow())
	require.NoError(t, sc.StopService(ctx, stopped.svc("B")))

	assert.Equal(t, stopped.log.entries, crashed.log.entries)
	assert.Equal(t, stopped.running(), crashed.running())
	assert.Empty(t, crashed.running())
	assert.Equal(t, StopReasonCrash, cc.StopReason(crashed.svc("B")))
	assert.Equal(t, StopReasonDependency, cc.StopReason(crashed.svc("D")))
}

func TestCrash_ErrorReachesService(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()
	require.NoError(t, c.StartService(ctx, f.svc("D")))

	boom := errors.New("stuck")
	f.services["D"].stopErr = boom
	assert.Same(t, boom, f.services["B"].crashNow())
}

func TestLateNodesAreNotWired(t *testing.T) {
	f, c := newExampleFixture(t)
	late := f.add(t, "E")
	f.requires(t, "E", "D")

	assert.Nil(t, late.crash)
	assert.Equal(t, 0, late.wired)

	require.NoError(t, c.StartService(context.Background(), late))
	assert.Equal(t, []string{"B", "A", "C", "D", "E"}, f.log.only("start"))
	assert.True(t, c.IsRunning(late))
}

func TestStartAllStopAll(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()

	require.NoError(t, c.StartAll(ctx))
	assert.Equal(t, []string{"B", "A", "C", "D"}, f.log.only("start"))

	f.log.reset()
	require.NoError(t, c.StopAll(ctx))
	// Reverse insertion order is D, C, B, A. Stopping D and C is plain, B
	// cascades to A.
	assert.Equal(t, []string{"D", "C", "A", "B"}, f.log.only("stop"))
	assert.Empty(t, f.running())

	f.log.reset()
	require.NoError(t, c.StopAll(ctx))
	assert.Empty(t, f.log.entries, "nothing running, nothing stopped")
}

func TestStartAfterStopClearsReason(t *testing.T) {
	f, c := newExampleFixture(t)
	ctx := context.Background()

	require.NoError(t, c.StartService(ctx, f.svc("A")))
	require.NoError(t, c.StopService(ctx, f.svc("A")))
	assert.Equal(t, StopReasonManual, c.StopReason(f.svc("A")))

	require.NoError(t, c.StartService(ctx, f.svc("A")))
	assert.Equal(t, StopReasonNone, c.StopReason(f.svc("A")))
	assert.Equal(t, StopReasonNone, c.StopReason(&mockService{name: "stranger"}))
}

func TestPlanStart(t *testing.T) {
	f, c := newExampleFixture(t)

	plan, err := c.PlanStart(f.svc("D"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C", "D"}, names(plan))
	assert.Empty(t, f.log.entries, "planning has no side effects")

	require.NoError(t, c.StartService(context.Background(), f.svc("A")))
	plan, err = c.PlanStart(f.svc("D"))
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, names(plan))

	_, err = c.PlanStart(nil)
	assert.ErrorIs(t, err, dependency.ErrNilArgument)
}

func TestPlanStop(t *testing.T) {
	f, c := newExampleFixture(t)

	plan, err := c.PlanStop(f.svc("B"))
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C", "A", "B"}, names(plan))

	plan, err = c.PlanStop(f.svc("C"))
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C"}, names(plan))

	assert.Empty(t, f.log.entries)

	_, err = c.PlanStop(&mockService{name: "stranger"})
	assert.ErrorIs(t, err, dependency.ErrNotMember)
}

func TestDeepChain(t *testing.T) {
	const n = 10000
	f := newFixture(t)
	for i := 0; i < n; i++ {
		f.add(t, fmt.Sprintf("s%d", i))
	}
	// s0 requires s1 requires s2 ...
	for i := 0; i < n-1; i++ {
		f.requires(t, fmt.Sprintf("s%d", i), fmt.Sprintf("s%d", i+1))
	}
	c, err := New(f.graph)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.StartService(ctx, f.svc("s0")))
	starts := f.log.only("start")
	require.Len(t, starts, n)
	assert.Equal(t, fmt.Sprintf("s%d", n-1), starts[0])
	assert.Equal(t, "s0", starts[n-1])

	f.log.reset()
	require.NoError(t, c.StopService(ctx, f.svc(fmt.Sprintf("s%d", n-1))))
	stops := f.log.only("stop")
	require.Len(t, stops, n)
	assert.Equal(t, "s0", stops[0])
}

func TestStopReason_String(t *testing.T) {
	tests := []struct {
		reason   StopReason
		expected string
	}{
		{StopReasonNone, "none"},
		{StopReasonManual, "manual"},
		{StopReasonDependency, "dependency"},
		{StopReasonCrash, "crash"},
		{StopReason(99), "none"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.reason.String())
	}
}
