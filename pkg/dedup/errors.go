// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dedup

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid codec configuration")
	ErrInvalidHeader     = errors.New("invalid header")
	ErrTruncatedHeader   = errors.New("truncated header")
	ErrInvalidSessionKey = errors.New("invalid session key")
	ErrDictionaryMiss    = errors.New("reference to missing dictionary entry")
	ErrTruncatedRecord   = errors.New("truncated reference record")
)
