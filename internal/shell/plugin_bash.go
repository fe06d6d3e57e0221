package shell

// BashPlugin is the bash plugin source. ctimer_watch starts a background
// reader that copies each countdown line from the pipe into a status file;
// ctimer_status prints it.
const BashPlugin = `# ctimer shell plugin, auto-generated, do not edit manually
# Source this file from your ~/.bashrc:
#   source ~/.config/ctimer/ctimer.plugin.bash

_ctimer_pipe=@PIPE@
_ctimer_status_file="${XDG_RUNTIME_DIR:-${TMPDIR:-/tmp}}/ctimer.status"

ctimer_watch() {
  if [[ ! -p "$_ctimer_pipe" ]]; then
    echo "ctimer: no pipe at $_ctimer_pipe (run ctimer -p first)" >&2
    return 1
  fi
  (
    while true; do
      while IFS= read -r line; do
        printf '%s\n' "$line" > "$_ctimer_status_file"
      done < "$_ctimer_pipe"
    done
  ) &
  disown
}

ctimer_status() {
  [[ -f "$_ctimer_status_file" ]] && cat "$_ctimer_status_file"
}
`
