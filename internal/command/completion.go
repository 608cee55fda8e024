// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for objdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_objdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "browse diff tree completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--by-key -k --default-missing --filter -f --format --ignore -i --key --no-recursive --null-empty --passphrase -p --profile --raw --select --unequal -u --aws-profile --endpoint --no-cache --region --color -c"
    local output="--exit-code -e --output -o --padding --sort -s --summary --titles -t"

    case "$cmd" in
        diff|tree)
            local opts="$common $output"
            ;;
        browse)
            local opts="$common"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml tree delta" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "json yaml hcl" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise, we're on a LEFT or RIGHT document, complete files
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _objdiff objdiff
`

const zshCompletionScript = `#compdef objdiff

_objdiff() {
  local -a cmds
  cmds=(
    'browse:interactively browse differences'
    'diff:list differences'
    'tree:show differences as a tree'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-k --by-key)'{-k,--by-key}'[match list elements by key]'
  '--default-missing[compare missing members as defaults]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--format[input format]:format:(json yaml hcl)'
  '(-i --ignore)'{-i,--ignore}'[members to skip]:members'
  '--key[element keys]:keys'
  '--no-recursive[compare nested objects as whole values]'
  '--null-empty[treat null and empty lists as equal]'
  '(-p --passphrase)'{-p,--passphrase}'[encrypted state passphrase]'
  '--profile[comparison profile]:profile'
  '--raw[include unconverted values]'
  '--select[path to compare]:path'
  '(-u --unequal)'{-u,--unequal}'[compare lists of different lengths]'
  '--aws-profile[aws profile]:profile'
  '--endpoint[s3 endpoint]:url'
  '--no-cache[do not cache s3 documents]'
  '--region[aws region]:region'
  '(-c --color)'{-c,--color}'[enable colored text]'
  )

  local -a output
  output=(
  '(-e --exit-code)'{-e,--exit-code}'[exit 1 when documents differ]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml tree delta)'
  '--padding[column padding]:padding'
  '(-s --sort)'{-s,--sort}'[sort fields]:fields'
  '--summary[print a count of differences]'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'objdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff|tree)
      _arguments -C \
        $common \
        $output \
        ':LEFT:_files' \
        ':RIGHT:_files'
      ;;
    browse)
      _arguments -C \
        $common \
        ':LEFT:_files' \
        ':RIGHT:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _objdiff objdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: objdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "objdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
