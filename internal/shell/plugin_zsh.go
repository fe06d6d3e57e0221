package shell

// ZshPlugin is the zsh plugin source. Same functions as the bash plugin; the
// reader is started with &! so the shell does not track it as a job.
const ZshPlugin = `# ctimer shell plugin, auto-generated, do not edit manually
# Source this file from your ~/.zshrc:
#   source ~/.config/ctimer/ctimer.plugin.zsh

_ctimer_pipe=@PIPE@
_ctimer_status_file="${XDG_RUNTIME_DIR:-${TMPDIR:-/tmp}}/ctimer.status"

ctimer_watch() {
  if [[ ! -p "$_ctimer_pipe" ]]; then
    print -u2 "ctimer: no pipe at $_ctimer_pipe (run ctimer -p first)"
    return 1
  fi
  {
    while true; do
      while IFS= read -r line; do
        print -r -- "$line" > "$_ctimer_status_file"
      done < "$_ctimer_pipe"
    done
  } &!
}

ctimer_status() {
  [[ -f "$_ctimer_status_file" ]] && cat "$_ctimer_status_file"
}
`
