// Copyright 2024 The go-svm Authors
// This file is part of the go-svm library.
//
// The go-svm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-svm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-svm library. If not, see <http://www.gnu.org/licenses/>.

package core

import "github.com/ethereum/go-ethereum/metrics"

var (
	rollbackFeePayerOnlyMeter = metrics.NewRegisteredMeter("svm/rollback/feepayer", nil)
	rollbackSameMeter         = metrics.NewRegisteredMeter("svm/rollback/same", nil)
	rollbackSeparateMeter     = metrics.NewRegisteredMeter("svm/rollback/separate", nil)
	rollbackDataCounter       = metrics.NewRegisteredCounter("svm/rollback/data", nil)

	processFailedMeter    = metrics.NewRegisteredMeter("svm/process/failed", nil)
	processSucceededMeter = metrics.NewRegisteredMeter("svm/process/succeeded", nil)
)
