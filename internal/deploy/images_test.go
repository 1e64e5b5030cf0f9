package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/libraries"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
	"github.com/moonsphere-systems/moonsphere-cli/internal/vcs"
)

func TestBuildImage(t *testing.T) {
	cfg := testConfig(t)
	dir, _ := cfg.ModulePath(config.ModuleWebClient)

	orig := headRevision
	t.Cleanup(func() { headRevision = orig })
	headRevision = func(string) (vcs.Revision, error) {
		return vcs.Revision{Hash: "abc1234def5678"}, nil
	}

	plan, err := BuildImage(cfg, config.ModuleWebClient, ModeProd)
	require.NoError(t, err)
	require.Len(t, plan.Stages, 3)

	build, ok := plan.Stages[0].Invocation()
	require.True(t, ok)
	assert.Equal(t, dir, build.Dir)

	var succeeded []string
	rep := &labelReporter{succeeded: &succeeded}
	ex := &recordingExecutor{}
	res := pipeline.NewRunner(plan.Name, ex, rep).Run(context.Background(), plan.Stages)
	require.True(t, res.OK())
	assert.Equal(t, []string{
		"docker build -t milosz08/msph-web-client:latest --build-arg BUILD_MODE=prod .",
		"docker tag milosz08/msph-web-client:latest milosz08/msph-web-client:abc1234",
		"docker push --all-tags milosz08/msph-web-client",
	}, ex.calls)
	assert.Equal(t, "Successfully tagged docker image as milosz08/msph-web-client:abc1234", succeeded[1])
}

func TestBuildImage_RevisionFailure(t *testing.T) {
	cfg := testConfig(t)
	orig := headRevision
	t.Cleanup(func() { headRevision = orig })
	headRevision = func(string) (vcs.Revision, error) { return vcs.Revision{}, vcs.ErrNoCommits }

	plan, err := BuildImage(cfg, config.ModuleMailParser, ModeDev)
	require.NoError(t, err)
	ex := &recordingExecutor{}
	res := run(plan, ex)
	require.False(t, res.OK())
	assert.Equal(t, 2, res.AtStage)
	assert.Equal(t, pipeline.KindTask, res.Cause.Kind)
	assert.True(t, errors.Is(res.Cause, vcs.ErrNoCommits))
	assert.Len(t, ex.calls, 1)
}

func TestBuildImage_Validation(t *testing.T) {
	cfg := config.Defaults()
	_, err := BuildImage(cfg, "desktop-client", ModeDev)
	require.Error(t, err)
	assert.True(t, msphErrors.IsCategory(err, msphErrors.CategoryValidation))

	m := cfg.Modules[config.ModuleMailParser]
	m.Image = ""
	cfg.Modules[config.ModuleMailParser] = m
	_, err = BuildImage(cfg, config.ModuleMailParser, ModeDev)
	require.Error(t, err)
}

func TestJibImage(t *testing.T) {
	cfg := testConfig(t)
	monorepo, _ := cfg.ModulePath(config.ModuleInfraMonorepo)
	m2 := t.TempDir()

	plain, err := JibImage(cfg, "msph-auth", nil, m2)
	require.NoError(t, err)
	assert.Len(t, plain.Stages, 5)

	withLibs, err := JibImage(cfg, "msph-auth", []string{"msph-shared-lib"}, m2)
	require.NoError(t, err)
	require.Len(t, withLibs.Stages, 8)

	require.NoError(t, os.MkdirAll(filepath.Join(m2, "msph-shared-lib", "1.0"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(m2, "other"), 0o755))

	ex := &recordingExecutor{}
	res := run(withLibs, ex)
	require.True(t, res.OK())
	assert.NoDirExists(t, filepath.Join(m2, "msph-shared-lib"))
	assert.DirExists(t, filepath.Join(m2, "other"))

	rootPom := filepath.Join(monorepo, "pom.xml")
	servicePom := filepath.Join(monorepo, "msph-auth", "pom.xml")
	assert.Equal(t, []string{
		"mvn -version",
		"mvn -f " + rootPom + " -N install -U",
		"mvn -f " + rootPom + " -pl msph-shared-lib install -U",
		"mvn -f " + servicePom + " clean",
		"mvn -f " + servicePom + " compile",
		"mvn -f " + servicePom + " package",
		"mvn -f " + servicePom + " jib:build",
	}, ex.calls)
}

func TestJibImage_Validation(t *testing.T) {
	cfg := config.Defaults()
	_, err := JibImage(cfg, "msph-auth", []string{"unknown-lib"}, t.TempDir())
	require.Error(t, err)
	assert.True(t, msphErrors.IsCategory(err, msphErrors.CategoryValidation))

	_, err = JibImage(cfg, " ", nil, t.TempDir())
	require.Error(t, err)
}

func TestUp(t *testing.T) {
	orig := keyBits
	t.Cleanup(func() { keyBits = orig })
	keyBits = 1024

	cfg := testConfig(t)
	base := modulePath(t, cfg, config.ModuleBase)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "docker"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "docker", ".dockerignore"), []byte("node_modules\n"), 0o600))

	one, err := Up(cfg, ModeDev, config.ModuleWebClient)
	require.NoError(t, err)
	assert.Len(t, one.Stages, 4)

	all, err := Up(cfg, ModeDev, ServiceAll)
	require.NoError(t, err)
	require.Len(t, all.Stages, 6)
	assert.Equal(t, "Starting docker container: msph-content-distributor", all.Stages[2].Start)

	ex := &recordingExecutor{}
	res := run(all, ex)
	require.True(t, res.OK(), "%v", res.Err())
	assert.FileExists(t, filepath.Join(base, "rsa-keys", "id_rsa"))
	assert.FileExists(t, filepath.Join(base, "rsa-keys", "id_srv_rsa.pub"))
	assert.NoFileExists(t, filepath.Join(cfg.Root, ".dockerignore"))
	require.Len(t, ex.calls, 3)
	assert.Contains(t, ex.calls[0], "ENV_BUILD_MODE=dev docker-compose --project-name moonsphere")
	assert.Contains(t, ex.calls[2], "up -d msph-landing-page")
}

func TestUp_MissingDockerignore(t *testing.T) {
	orig := keyBits
	t.Cleanup(func() { keyBits = orig })
	keyBits = 1024

	cfg := testConfig(t)
	modulePath(t, cfg, config.ModuleBase)
	plan, err := Up(cfg, ModeProd, config.ModuleLandingPage)
	require.NoError(t, err)

	ex := &recordingExecutor{}
	res := run(plan, ex)
	require.False(t, res.OK())
	assert.Equal(t, 2, res.AtStage)
	assert.Empty(t, ex.calls)
}

func TestUp_Validation(t *testing.T) {
	_, err := Up(config.Defaults(), ModeDev, "mail-parser")
	require.Error(t, err)
	assert.Equal(t, []string{"content-distributor", "web-client", "landing-page", "all"}, UpServices())
}

type staticRegistry map[string]libraries.PackageInfo

func (s staticRegistry) Latest(_ context.Context, name string) (libraries.PackageInfo, error) {
	if info, ok := s[name]; ok {
		return info, nil
	}
	return libraries.PackageInfo{}, errors.New("unknown package " + name)
}

func TestLibraries(t *testing.T) {
	cfg := testConfig(t)
	for _, name := range ScannedModules {
		dir := modulePath(t, cfg, name)
		manifest := `{"devDependencies": {"typescript": "^5"}}`
		if name == config.ModuleWebClient {
			manifest = `{"dependencies": {"rxjs": "^7", "@ngx-translate/core": "^15"}}`
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, libraries.ManifestName), []byte(manifest), 0o600))
	}
	cd := modulePath(t, cfg, config.ModuleContentDistributor)

	plan, err := Libraries(cfg, staticRegistry{
		"rxjs":       {License: "Apache-2.0", RepoURL: "https://github.com/reactivex/rxjs"},
		"typescript": {License: "Apache-2.0", RepoURL: "https://github.com/microsoft/TypeScript"},
	})
	require.NoError(t, err)
	require.Len(t, plan.Stages, 6)

	ex := &recordingExecutor{}
	res := run(plan, ex)
	require.True(t, res.OK(), "%v", res.Err())

	jsonPath := filepath.Join(cd, "content", "static", "misc", libraries.JSONFileName)
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var libs []libraries.Library
	require.NoError(t, json.Unmarshal(data, &libs))
	require.Len(t, libs, 3)
	assert.Equal(t, "@ngx-translate/core", libs[0].Name)
	assert.Equal(t, libraries.Development, libs[2].Env)

	base, _ := cfg.ModulePath(config.ModuleBase)
	assert.FileExists(t, filepath.Join(base, libraries.MarkdownFileName))
	assert.Equal(t, "docker cp "+jsonPath+" msph-content-distributor:/var/www/html/static/misc/", ex.calls[2])
}

func TestLibraries_RegistryFailureStopsBeforeWriting(t *testing.T) {
	cfg := testConfig(t)
	for _, name := range ScannedModules {
		dir := modulePath(t, cfg, name)
		require.NoError(t, os.WriteFile(filepath.Join(dir, libraries.ManifestName), []byte(`{"dependencies":{"left-pad":"1"}}`), 0o600))
	}
	plan, err := Libraries(cfg, staticRegistry{})
	require.NoError(t, err)

	res := run(plan, &recordingExecutor{})
	require.False(t, res.OK())
	assert.Equal(t, 3, res.AtStage)
	base, _ := cfg.ModulePath(config.ModuleBase)
	assert.NoFileExists(t, filepath.Join(base, libraries.MarkdownFileName))
}

// labelReporter collects the success labels of a run.
type labelReporter struct {
	pipeline.NoopReporter
	succeeded *[]string
}

func (l *labelReporter) StageSucceeded(_ pipeline.Progress, label string, _ time.Duration) {
	*l.succeeded = append(*l.succeeded, label)
}
