// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ProjectNotFoundId Id = iota + 1
	ManifestParseErrorId
	AddonMainMissingId
	DependenciesMissingId
	AddonOrderingCycleId
	ConfigLoadFailedId
	WorkspaceConfigParseErrorId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# No project found!

We searched for a package.json but couldn't find one at the given root.

## Things you can try:
- Run faros from your project directory:
~~~
$ cd /path/to/your/project
$ faros addons list
~~~

- Or point faros at the project explicitly:
~~~
$ faros --project /path/to/your/project addons list
~~~

- If this is a new project, create a package.json first:
~~~
$ npm init -y
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse package.json!

A package.json file exists but contains invalid JSON.

## Common causes:
- Trailing commas (JSON does not allow them)
- Comments (JSON does not allow them)
- Unquoted keys or single-quoted strings

## Things you can try:
- Validate the file with a JSON linter
- Check the parse error above for the exact position
- Re-run with --verbose to see which file failed`,
	}

	addonMainMissingIssue = &Issue{
		id: AddonMainMissingId,
		mdMsg: `
# Addon entry point not found!

A package declares itself a Faros addon, but its entry file does not exist.

## How the entry point is resolved (in order of precedence):
1. The 'main' field under the package's 'faros-addon' config
2. The top-level 'main' field of package.json
3. index.js in the package root

## Things you can try:
- Check that the referenced file exists and is spelled correctly
- If the addon was just installed, re-run your package manager install
- Remove the 'faros-addon' keyword if the package is not actually an addon`,
	}

	dependenciesMissingIssue = &Issue{
		id: DependenciesMissingId,
		mdMsg: `
# Dependencies missing!

Some declared dependencies could not be found in any node_modules directory.

## Things you can try:
- Install your dependencies:
~~~
$ npm install
~~~

- If you use a workspace/monorepo layout, install from the workspace root
- Check that the missing packages are spelled correctly in package.json
- Run 'faros doctor' to see every unresolved dependency at once`,
	}

	addonOrderingCycleIssue = &Issue{
		id: AddonOrderingCycleId,
		mdMsg: `
# Addon ordering cycle detected!

The before/after declarations of your addons contradict each other, so no
initialization order satisfies all of them.

## Things you can try:
- Inspect the 'before' and 'after' fields under 'faros-addon' in the
  package.json of each addon named in the cycle
- Remove or reverse one of the conflicting declarations
- Run 'faros addons list --ordered' after each change to verify`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your faros configuration file exists but could not be loaded.

## Things you can try:
- Check the YAML syntax of your config file
- Verify file permissions
- Run 'faros config show' to see where the config is read from
- Delete the config file to fall back to defaults`,
	}

	workspaceConfigParseErrorIssue = &Issue{
		id: WorkspaceConfigParseErrorId,
		mdMsg: `
# Failed to parse faros.toml!

A faros.toml workspace file exists in your project but contains invalid TOML.

## Things you can try:
- Validate the file with a TOML linter
- Check the parse error above for the exact line
- Common mistakes: missing quotes around strings, '=' instead of section
  headers, duplicate keys`,
	}

	issues = map[Id]*Issue{
		projectNotFoundIssue.Id():           projectNotFoundIssue,
		manifestParseErrorIssue.Id():        manifestParseErrorIssue,
		addonMainMissingIssue.Id():          addonMainMissingIssue,
		dependenciesMissingIssue.Id():       dependenciesMissingIssue,
		addonOrderingCycleIssue.Id():        addonOrderingCycleIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		workspaceConfigParseErrorIssue.Id(): workspaceConfigParseErrorIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
