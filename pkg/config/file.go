package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Soft Orgs configuration

# The name of the server.
# This is the name that will be displayed in the UI header.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The SSH server configuration.
ssh:
  # The address on which the SSH server will listen.
  listen_addr: "{{ .SSH.ListenAddr }}"

  # The public URL of the SSH server.
  public_url: "{{ .SSH.PublicURL }}"

  # The path to the SSH server's private key.
  key_path: "{{ .SSH.KeyPath }}"

  # The maximum number of seconds a connection can take.
  # A value of 0 means no timeout.
  max_timeout: {{ .SSH.MaxTimeout }}

  # The number of seconds a connection can be idle before it is closed.
  # A value of 0 means no timeout.
  idle_timeout: {{ .SSH.IdleTimeout }}

  # Public keys allowed to open the dashboard. Anyone can connect when the
  # list is empty.
{{- if .SSH.AuthorizedKeys }}
  authorized_keys:
{{- range .SSH.AuthorizedKeys }}
    - "{{ . }}"
{{- end }}
{{- else }}
  #authorized_keys:
  #  - "ssh-ed25519 AAAAC3NzaC1lZDI1..."
{{- end }}

# The HTTP API server configuration.
http:
  # Serve the read-only JSON API.
  enabled: {{ .HTTP.Enabled }}
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

# The stats server configuration.
stats:
  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  data_source: "{{ .DB.DataSource }}"

# The dataset cache configuration.
cache:
  # The cache backend. Valid values are "lru" and "noop".
  backend: "{{ .Cache.Backend }}"
  # The maximum number of cached datasets.
  size: {{ .Cache.Size }}
  # How long a cached dataset is kept. A value of 0 means forever.
  ttl: "{{ .Cache.TTL }}"

# The dataset configuration.
dataset:
  # Where organizations come from. Valid values are "mock" and "db".
  # Use "orgs seed" to fill the database.
  source: "{{ .Dataset.Source }}"
  # The number of generated organizations.
  organizations: {{ .Dataset.Organizations }}
  # The maximum number of generated users per organization.
  users: {{ .Dataset.Users }}
  # The seed of generated datasets. A value of 0 picks a random seed.
  seed: {{ .Dataset.Seed }}
  # Simulated latency of every load.
  delay: "{{ .Dataset.Delay }}"
  # Cron spec to drop the cached dataset. Leave empty to disable.
  refresh: "{{ .Dataset.Refresh }}"

# The list layout, in terminal lines.
list:
  organization_row_height: {{ .List.OrganizationRowHeight }}
  organization_overscan: {{ .List.OrganizationOverscan }}
  user_row_height: {{ .List.UserRowHeight }}
  user_overscan: {{ .List.UserOverscan }}
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
