package sqlinline

const QListPendingArticles = `--sql 4d392005-b52b-4b8a-ba05-001ebba87311
select id, status, queued_at, updated_at
from articles
where status in ('queued', 'processing')
  and (cardinality($1::uuid[]) = 0 or team_id = any($1::uuid[]))
order by queued_at asc;
`

const QRecentCompletionDurations = `--sql 32d038e6-61fc-4e26-9b11-3b33c9b7474e
select extract(epoch from (updated_at - created_at))
from articles
where status = 'draft'
  and updated_at >= now() - make_interval(secs => $2::float8)
  and (cardinality($1::uuid[]) = 0 or team_id = any($1::uuid[]))
order by updated_at desc
limit $3;
`
