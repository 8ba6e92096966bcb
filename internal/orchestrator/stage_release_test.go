package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/config"
	"github.com/zendframework/maintainers/internal/domain"
	"github.com/zendframework/maintainers/internal/output"
	"github.com/zendframework/maintainers/internal/repository"
)

const stageChangelog = "# CHANGELOG\n\n## 2.4.2 (2015-05-11)\n\n- Older fix\n"

type stageFixture struct {
	fs   afero.Fs
	repo *mockGitRepository
	cfg  *config.Config
	out  *bytes.Buffer
}

func newStageFixture(t *testing.T) *stageFixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/zf2/library/Zend/Version/Version.php",
		[]byte("<?php\nfinal class Version\n{\n    const VERSION = '2.4.2';\n}\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/zf2/CHANGELOG.md", []byte(stageChangelog), 0644))
	require.NoError(t, afero.WriteFile(fs, "/zf2/README.md", []byte("old readme\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/patches/0001-fix.patch", []byte("From abc\nSubject: fix\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/patches/0002-fix.patch", []byte("From def\nSubject: fix2\n"), 0644))
	return &stageFixture{
		fs:   fs,
		repo: &mockGitRepository{dir: "/zf2"},
		cfg:  config.DefaultConfig(),
		out:  new(bytes.Buffer),
	}
}

func (f *stageFixture) orchestrator() *StageReleaseOrchestrator {
	orch := NewStageReleaseOrchestrator(
		func(string) repository.GitRepository { return f.repo },
		f.fs,
		f.cfg,
		output.NewPrinter(f.out, false),
		zap.NewNop(),
	)
	orch.now = func() time.Time { return time.Date(2015, time.May, 20, 10, 0, 0, 0, time.UTC) }
	return orch
}

func TestStageReleaseOrchestrator_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Should stage the next patch release without tagging it", func(t *testing.T) {
		f := newStageFixture(t)
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.1", "release-2.4.2", "release-2.5.0"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.2").Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, []byte("From abc\nSubject: fix\n")).Return(nil).Once()
		f.repo.On("LogOneline", mock.Anything, "release-2.4.2", "HEAD").
			Return("abc1234 Fix XSS vector in Escaper\n", nil).Once()
		f.repo.On("CommitAll", mock.Anything, "Prepare for 2.4.3").Return(nil).Once()

		result, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0001-fix.patch"},
			Dir:     "/zf2",
		})
		require.NoError(t, err)
		f.repo.AssertExpectations(t)
		f.repo.AssertNotCalled(t, "CreateSignedTag", mock.Anything, mock.Anything, mock.Anything)

		assert.Equal(t, "2.4.2", result.Current.String())
		assert.Equal(t, "2.4.3", result.Next.String())
		assert.Equal(t, "- Fix XSS vector in Escaper", result.Changes)
		assert.Equal(t,
			"[DONE] Please verify the patch, and then execute:\n"+
				"    git tag -s -m \"Zend Framework 2.4.3\n\n- Fix XSS vector in Escaper\" release-2.4.3\n",
			f.out.String(),
		)

		version, err := afero.ReadFile(f.fs, "/zf2/library/Zend/Version/Version.php")
		require.NoError(t, err)
		assert.Contains(t, string(version), "    const VERSION = '2.4.3';\n")

		changelog, err := afero.ReadFile(f.fs, "/zf2/CHANGELOG.md")
		require.NoError(t, err)
		assert.Equal(t,
			"# CHANGELOG\n\n## 2.4.3 (2015-05-20)\n\n- Fix XSS vector in Escaper\n\n## 2.4.2 (2015-05-11)\n\n- Older fix\n",
			string(changelog),
		)

		readme, err := afero.ReadFile(f.fs, "/zf2/README.md")
		require.NoError(t, err)
		assert.Contains(t, string(readme), "# Welcome to the Zend Framework 2.4 Release!")
		assert.Contains(t, string(readme), "released 20 May 2015")
	})

	t.Run("Should apply patches in the given order", func(t *testing.T) {
		f := newStageFixture(t)
		var applied []string
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.2"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.2").Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { applied = append(applied, string(args.Get(1).([]byte))) }).
			Return(nil).Twice()
		f.repo.On("LogOneline", mock.Anything, "release-2.4.2", "HEAD").Return("abc1234 one\ndef5678 two\n", nil).Once()
		f.repo.On("CommitAll", mock.Anything, "Prepare for 2.4.3").Return(nil).Once()

		result, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0002-fix.patch", "/patches/0001-fix.patch"},
			Dir:     "/zf2",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"From def\nSubject: fix2\n", "From abc\nSubject: fix\n"}, applied)
		assert.Equal(t, "- one\n- two", result.Changes)
	})

	t.Run("Should keep a .0 version when staging from the first tag of a line", func(t *testing.T) {
		f := newStageFixture(t)
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.0"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.0").Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, mock.Anything).Return(nil).Once()
		f.repo.On("LogOneline", mock.Anything, "release-2.4.0", "HEAD").Return("abc1234 one\n", nil).Once()
		f.repo.On("CommitAll", mock.Anything, "Prepare for 2.4.0").Return(nil).Once()

		result, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0001-fix.patch"},
			Dir:     "/zf2",
		})
		require.NoError(t, err)
		assert.Equal(t, "2.4.0", result.Next.String())
		assert.Contains(t, f.out.String(), "release-2.4.0\n")
		f.repo.AssertExpectations(t)
	})

	t.Run("Should abort when the release branch cannot be created", func(t *testing.T) {
		f := newStageFixture(t)
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.2"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.2").Return(errors.New("already exists")).Once()

		_, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0001-fix.patch"},
			Dir:     "/zf2",
		})
		require.Error(t, err)
		f.repo.AssertNotCalled(t, "ApplyMailbox", mock.Anything, mock.Anything)
		assert.Equal(t, "[ERROR] Could not create new branch release-2.4 based on tag release-2.4.2!\n", f.out.String())
	})

	t.Run("Should name the patch that does not apply", func(t *testing.T) {
		f := newStageFixture(t)
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.2"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.2").Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, []byte("From abc\nSubject: fix\n")).Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, []byte("From def\nSubject: fix2\n")).Return(errors.New("patch failed")).Once()

		result, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0001-fix.patch", "/patches/0002-fix.patch"},
			Dir:     "/zf2",
		})
		require.Error(t, err)
		f.repo.AssertNotCalled(t, "LogOneline", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, "[ERROR] Could not cleanly apply patchfile \"/patches/0002-fix.patch\"!\n", f.out.String())
		assert.Equal(t, domain.StepStatusFailed, result.Steps[1].Status)
		assert.Equal(t, domain.StepStatusPending, result.Steps[2].Status)
	})

	t.Run("Should abort when patch messages cannot be read", func(t *testing.T) {
		f := newStageFixture(t)
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.2"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.2").Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, mock.Anything).Return(nil).Once()
		f.repo.On("LogOneline", mock.Anything, "release-2.4.2", "HEAD").Return("", errors.New("bad revision")).Once()

		_, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0001-fix.patch"},
			Dir:     "/zf2",
		})
		require.Error(t, err)
		assert.Equal(t, "[ERROR] Could not retrieve patch messages!\n", f.out.String())
		changelog, err := afero.ReadFile(f.fs, "/zf2/CHANGELOG.md")
		require.NoError(t, err)
		assert.Equal(t, stageChangelog, string(changelog))
	})

	t.Run("Should not print the tag command when the commit fails", func(t *testing.T) {
		f := newStageFixture(t)
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.2"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.2").Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, mock.Anything).Return(nil).Once()
		f.repo.On("LogOneline", mock.Anything, "release-2.4.2", "HEAD").Return("abc1234 one\n", nil).Once()
		f.repo.On("CommitAll", mock.Anything, "Prepare for 2.4.3").Return(errors.New("exit status 1")).Once()

		result, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0001-fix.patch"},
			Dir:     "/zf2",
		})
		require.Error(t, err)
		assert.Empty(t, result.TagCommand)
		assert.Equal(t, "[ERROR] Could not commit version bump changes!\n", f.out.String())
	})

	t.Run("Should fail when the changelog has no heading", func(t *testing.T) {
		f := newStageFixture(t)
		require.NoError(t, afero.WriteFile(f.fs, "/zf2/CHANGELOG.md", []byte("nothing here\n"), 0644))
		f.repo.On("ListTags", mock.Anything).Return([]string{"release-2.4.2"}, nil).Once()
		f.repo.On("CreateBranch", mock.Anything, "release-2.4", "release-2.4.2").Return(nil).Once()
		f.repo.On("ApplyMailbox", mock.Anything, mock.Anything).Return(nil).Once()
		f.repo.On("LogOneline", mock.Anything, "release-2.4.2", "HEAD").Return("abc1234 one\n", nil).Once()

		_, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/0001-fix.patch"},
			Dir:     "/zf2",
		})
		require.Error(t, err)
		f.repo.AssertNotCalled(t, "CommitAll", mock.Anything, mock.Anything)
		assert.Contains(t, f.out.String(), "[ERROR] Could not update CHANGELOG.md:")
	})

	t.Run("Should reject missing patches before touching the repository", func(t *testing.T) {
		f := newStageFixture(t)
		_, err := f.orchestrator().Execute(ctx, StageReleaseConfig{Minor: "2.4", Dir: "/zf2"})
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "2.4",
			Patches: []string{"/patches/missing.patch"},
			Dir:     "/zf2",
		})
		require.ErrorIs(t, err, ErrInvalidArgument)
		f.repo.AssertNotCalled(t, "ListTags", mock.Anything)
	})

	t.Run("Should reject an invalid minor version", func(t *testing.T) {
		f := newStageFixture(t)
		_, err := f.orchestrator().Execute(ctx, StageReleaseConfig{
			Minor:   "two",
			Patches: []string{"/patches/0001-fix.patch"},
		})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}
