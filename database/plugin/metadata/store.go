// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metadata

import (
	"fmt"

	"github.com/blinklabs-io/nile/database/models"
	"github.com/blinklabs-io/nile/database/plugin"
	"github.com/blinklabs-io/nile/database/types"
	"gorm.io/gorm"
)

type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Authority
	GetAuthority(types.Txn) (*models.Authority, error)
	CreateAuthority(*models.Authority, types.Txn) error
	UpdateAuthority(*models.Authority, types.Txn) error

	// Agents
	GetAgent(
		[]byte, // agent
		types.Txn,
	) (*models.Agent, error)
	CreateAgent(*models.Agent, types.Txn) error
	UpdateAgent(*models.Agent, types.Txn) error
	GetAgents(
		int, // limit
		types.Txn,
	) ([]models.Agent, error)

	// Programs
	GetProgram(
		[]byte, // program
		types.Txn,
	) (*models.Program, error)
	CreateProgram(*models.Program, types.Txn) error
	UpdateProgram(*models.Program, types.Txn) error

	// Reports
	GetReport(
		[]byte, // reportID
		types.Txn,
	) (*models.Report, error)
	CreateReport(*models.Report, types.Txn) error
	UpdateReport(*models.Report, types.Txn) error
	GetReportsByProgram(
		[]byte, // program
		types.Txn,
	) ([]models.Report, error)

	// Vote markers
	GetVoteMarker(
		[]byte, // reportID
		[]byte, // agent
		types.Txn,
	) (*models.VoteMarker, error)
	CreateVoteMarker(*models.VoteMarker, types.Txn) error
	GetVoteMarkersByReport(
		[]byte, // reportID
		types.Txn,
	) ([]models.VoteMarker, error)
}

// New returns the started metadata plugin selected by name
func New(pluginName string, env plugin.Env) (MetadataStore, error) {
	p, err := plugin.StartPlugin(plugin.PluginTypeMetadata, pluginName, env)
	if err != nil {
		return nil, err
	}
	metadataStore, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement MetadataStore interface",
			pluginName,
		)
	}
	return metadataStore, nil
}
