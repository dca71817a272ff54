package collections

import (
	"sync"
	"sync/atomic"
)

// ContextPath names a well-known location in the shared context store. The
// constants below are plain path strings; the store attaches no special
// meaning to them.
type ContextPath = string

// Well-known environment paths.
const (
	PathBehaviorsLogConfiguration ContextPath = "/environment/behaviors/log-configuration-declarations"

	PathBuildRelease ContextPath = "/environment/build/release"
	PathBuildBranch  ContextPath = "/environment/build/branch"
	PathBuildFlavor  ContextPath = "/environment/build/flavor"
	PathBuildName    ContextPath = "/environment/build/name"
	PathBuildURL     ContextPath = "/environment/build/url"

	PathCredentialNames   ContextPath = "/environment/credential/names"
	PathCredentialURIs    ContextPath = "/environment/credential/uris"
	PathCredentialSources ContextPath = "/environment/credential/sources"

	PathLandscapeNames   ContextPath = "/environment/landscape/names"
	PathLandscapeURIs    ContextPath = "/environment/landscape/uris"
	PathLandscapeSources ContextPath = "/environment/landscape/sources"

	PathRuntimeNames   ContextPath = "/environment/runtime/names"
	PathRuntimeURIs    ContextPath = "/environment/runtime/uris"
	PathRuntimeSources ContextPath = "/environment/runtime/sources"

	PathTopologyNames   ContextPath = "/environment/topology/names"
	PathTopologyURIs    ContextPath = "/environment/topology/uris"
	PathTopologySources ContextPath = "/environment/topology/sources"

	PathJobID        ContextPath = "/environment/job/id"
	PathJobInitiator ContextPath = "/environment/job/initiator"
	PathJobLabel     ContextPath = "/environment/job/label"
	PathJobName      ContextPath = "/environment/job/name"
	PathJobOwner     ContextPath = "/environment/job/owner"
	PathJobType      ContextPath = "/environment/job/type"

	PathLogfileDebug ContextPath = "/environment/logfile_debug"
	PathLogfileOther ContextPath = "/environment/logfile_other"

	PathPipelineID       ContextPath = "/environment/pipeline/id"
	PathPipelineName     ContextPath = "/environment/pipeline/name"
	PathPipelineInstance ContextPath = "/environment/pipeline/instance"

	PathRuntimeHomeDirectory   ContextPath = "/environment/runtime/home"
	PathRuntimeConfigDirectory ContextPath = "/environment/runtime/config"

	PathOutputDirectory ContextPath = "/environment/output_directory"

	PathRunID     ContextPath = "/environment/runid"
	PathStartTime ContextPath = "/environment/starttime"
)

// Well-known configuration paths.
const (
	PathConfigCredentials ContextPath = "/configuration/credentials"
	PathConfigLandscape   ContextPath = "/configuration/landscape"
	PathConfigRuntime     ContextPath = "/configuration/runtime"
	PathConfigTopology    ContextPath = "/configuration/topology"

	PathDatabases ContextPath = "/configuration/runtime/databases"

	PathDebugBreakpoints ContextPath = "/configuration/runtime/breakpoints"
	PathDebugDebugger    ContextPath = "/configuration/runtime/debugger"

	PathResultsResourceDestDir ContextPath = "/configuration/runtime/results-configuration/static-resource-dest-dir"
	PathResultsResourceSrcDir  ContextPath = "/configuration/runtime/results-configuration/static-resource-src-dir"
	PathResultsHTMLTemplate    ContextPath = "/configuration/runtime/results-configuration/html-template"

	PathLoggingLevelConsole ContextPath = "/configuration/runtime/logging/levels/console"
	PathLoggingLevelLogfile ContextPath = "/configuration/runtime/logging/levels/logfile"
	PathLoggingLogname      ContextPath = "/configuration/runtime/logging/logname"
	PathLoggingBranched     ContextPath = "/configuration/runtime/logging/branched"

	PathResultsForConsole       ContextPath = "/configuration/runtime/paths/results/console"
	PathResultsForOrchestration ContextPath = "/configuration/runtime/paths/results/orchestration"
	PathResultsForServices      ContextPath = "/configuration/runtime/paths/results/service"
	PathResultsForTests         ContextPath = "/configuration/runtime/paths/results/tests"

	PathSkippedDevices ContextPath = "/configuration/runtime/skip-devices"

	PathTemplatesForConsole ContextPath = "/configuration/runtime/paths-templates/results/console"
	PathTemplatesForTests   ContextPath = "/configuration/runtime/paths-templates/results/tests"

	PathTestRoot ContextPath = "/configuration/runtime/testroot"

	PathTimeTravel  ContextPath = "/configuration/runtime/timetravel"
	PathTimePortals ContextPath = "/configuration/runtime/timeportals"

	PathUPNPExcludeInterfaces ContextPath = "/configuration/runtime/networking/protocols/upnp/exclude_interfaces"
	PathUPNPLoggedEvents      ContextPath = "/configuration/runtime/networking/protocols/upnp/subscriptions/logged-events"
)

//------------------------------------------------------------------------------
// PROCESS-WIDE SINGLETON
//------------------------------------------------------------------------------

var (
	sharedContext atomic.Pointer[Context]
	sharedLock    sync.Mutex
)

// SharedContext returns the process-wide context store, constructing it on
// first access. Construction happens at most once under concurrent first
// access: an unsynchronized fast check, then a re-check under the lock.
func SharedContext() *Context {
	if ctx := sharedContext.Load(); ctx != nil {
		return ctx
	}

	sharedLock.Lock()
	defer sharedLock.Unlock()

	if ctx := sharedContext.Load(); ctx != nil {
		return ctx
	}
	ctx := NewContext()
	sharedContext.Store(ctx)
	return ctx
}

// ResetSharedContext replaces the process-wide store, primarily so tests can
// inject an isolated instance. Passing nil re-arms lazy construction on the
// next SharedContext call.
func ResetSharedContext(ctx *Context) {
	sharedLock.Lock()
	defer sharedLock.Unlock()
	sharedContext.Store(ctx)
}
